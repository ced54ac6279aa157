package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/example/go-bpe/internal/config"
	"github.com/example/go-bpe/internal/model"
	"github.com/example/go-bpe/internal/tokenizer"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	activeCfg config.Config
	cfgLoaded bool
)

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "gobpe",
		Short: "Byte-pair-encoding tokenizer command line",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			activeCfg = loaded
			cfgLoaded = true
			setupLogger(loaded.LogLevel)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)

	cmd.AddCommand(newTrainCmd())
	cmd.AddCommand(newEncodeCmd())
	cmd.AddCommand(newDecodeCmd())
	cmd.AddCommand(newConvertCmd())
	cmd.AddCommand(newStatsCmd())

	return cmd
}

// setupLogger configures the process-wide slog default logger.
func setupLogger(levelStr string) {
	lvl, err := config.ParseLogLevel(levelStr)
	if err != nil {
		lvl = slog.LevelInfo
	}
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h))
}

func requireConfig() (config.Config, error) {
	if !cfgLoaded {
		return config.Config{}, fmt.Errorf("configuration not loaded")
	}
	return activeCfg, nil
}

// loadTokenizer reads the model files named by cfg in the configured format.
func loadTokenizer(cfg config.Config) (*tokenizer.Tokenizer, error) {
	format, err := config.NormalizeFormat(cfg.Paths.Format)
	if err != nil {
		return nil, err
	}

	switch format {
	case config.FormatOpenAI:
		return model.LoadOpenAI(cfg.Paths.VocabPath, cfg.Paths.MergesPath)
	default:
		return model.Load(cfg.Paths.VocabPath, cfg.Paths.MergesPath)
	}
}
