package main

import (
	"fmt"
	"log/slog"

	"github.com/example/go-bpe/internal/model"
	"github.com/spf13/cobra"
)

func newConvertCmd() *cobra.Command {
	var openaiVocab string
	var openaiMerges string

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Import an OpenAI-format vocabulary and rank file, re-save natively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			if openaiVocab == "" || openaiMerges == "" {
				return fmt.Errorf("--openai-vocab and --openai-merges are required")
			}

			tok, err := model.LoadOpenAI(openaiVocab, openaiMerges)
			if err != nil {
				return err
			}

			if err := model.Save(tok, cfg.Paths.VocabPath, cfg.Paths.MergesPath); err != nil {
				return err
			}

			slog.Info("model converted",
				"vocab_size", tok.Vocab().Len(),
				"ranks", tok.MergeCount(),
				"vocab_path", cfg.Paths.VocabPath,
				"merges_path", cfg.Paths.MergesPath)

			return nil
		},
	}

	cmd.Flags().StringVar(&openaiVocab, "openai-vocab", "", "Path to the OpenAI-format vocabulary JSON")
	cmd.Flags().StringVar(&openaiMerges, "openai-merges", "", "Path to the OpenAI-format rank file")

	return cmd
}
