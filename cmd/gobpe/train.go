package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/example/go-bpe/internal/model"
	"github.com/example/go-bpe/internal/tokenizer"
	"github.com/spf13/cobra"
)

func newTrainCmd() *cobra.Command {
	var corpusPath string

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a BPE model from a corpus file and save it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}
			if corpusPath == "" {
				return fmt.Errorf("--corpus is required")
			}

			corpus, err := os.ReadFile(corpusPath)
			if err != nil {
				return fmt.Errorf("read corpus: %w", err)
			}

			tok, err := tokenizer.Train(string(corpus), cfg.Train.VocabSize, cfg.Train.SpecialTokens)
			if err != nil {
				return err
			}

			if err := model.Save(tok, cfg.Paths.VocabPath, cfg.Paths.MergesPath); err != nil {
				return err
			}

			slog.Info("model trained",
				"corpus", corpusPath,
				"vocab_size", tok.Vocab().Len(),
				"merges", tok.MergeCount(),
				"vocab_path", cfg.Paths.VocabPath,
				"merges_path", cfg.Paths.MergesPath)

			return nil
		},
	}

	cmd.Flags().StringVar(&corpusPath, "corpus", "", "Path to the training corpus text file")

	return cmd
}
