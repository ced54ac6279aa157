package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Paths    PathsConfig `mapstructure:"paths"`
	Train    TrainConfig `mapstructure:"train"`
	LogLevel string      `mapstructure:"log_level"`
}

type PathsConfig struct {
	VocabPath  string `mapstructure:"vocab_path"`
	MergesPath string `mapstructure:"merges_path"`
	Format     string `mapstructure:"format"`
}

type TrainConfig struct {
	VocabSize     int      `mapstructure:"vocab_size"`
	SpecialTokens []string `mapstructure:"special_tokens"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Paths: PathsConfig{
			VocabPath:  "vocab.json",
			MergesPath: "merges.json",
			Format:     FormatNative,
		},
		Train: TrainConfig{
			VocabSize:     1000,
			SpecialTokens: []string{"<|endoftext|>"},
		},
		LogLevel: "info",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("paths-vocab-path", defaults.Paths.VocabPath, "Path to vocabulary file")
	fs.String("paths-merges-path", defaults.Paths.MergesPath, "Path to merges/rank file")
	fs.String("paths-format", defaults.Paths.Format, "Model file format (native|openai)")
	fs.Int("train-vocab-size", defaults.Train.VocabSize, "Target vocabulary size for training")
	fs.StringSlice("train-special-tokens", defaults.Train.SpecialTokens, "Special tokens reserved during training")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := v.BindPFlags(opts.Cmd.Flags()); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}
	registerAliases(v)

	v.SetEnvPrefix("GOBPE")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("gobpe")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("paths.vocab_path", c.Paths.VocabPath)
	v.SetDefault("paths.merges_path", c.Paths.MergesPath)
	v.SetDefault("paths.format", c.Paths.Format)
	v.SetDefault("train.vocab_size", c.Train.VocabSize)
	v.SetDefault("train.special_tokens", c.Train.SpecialTokens)
	v.SetDefault("log_level", c.LogLevel)
}

func registerAliases(v *viper.Viper) {
	v.RegisterAlias("paths.vocab_path", "paths-vocab-path")
	v.RegisterAlias("paths.merges_path", "paths-merges-path")
	v.RegisterAlias("paths.format", "paths-format")
	v.RegisterAlias("train.vocab_size", "train-vocab-size")
	v.RegisterAlias("train.special_tokens", "train-special-tokens")
	v.RegisterAlias("log_level", "log-level")
}
