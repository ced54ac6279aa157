package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

// ---------------------------------------------------------------------------
// Defaults and loading
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Paths.VocabPath != "vocab.json" {
		t.Errorf("VocabPath = %q, want vocab.json", cfg.Paths.VocabPath)
	}
	if cfg.Paths.Format != FormatNative {
		t.Errorf("Format = %q, want %q", cfg.Paths.Format, FormatNative)
	}
	if cfg.Train.VocabSize != 1000 {
		t.Errorf("VocabSize = %d, want 1000", cfg.Train.VocabSize)
	}
	if len(cfg.Train.SpecialTokens) != 1 || cfg.Train.SpecialTokens[0] != "<|endoftext|>" {
		t.Errorf("SpecialTokens = %v, want [<|endoftext|>]", cfg.Train.SpecialTokens)
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(LoadOptions{Defaults: DefaultConfig()})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Paths.MergesPath != "merges.json" {
		t.Errorf("MergesPath = %q, want merges.json", cfg.Paths.MergesPath)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("GOBPE_LOG_LEVEL", "debug")

	cfg, err := Load(LoadOptions{Defaults: DefaultConfig()})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gobpe.yaml")
	content := "paths:\n  vocab_path: custom-vocab.json\ntrain:\n  vocab_size: 777\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(LoadOptions{ConfigFile: path, Defaults: DefaultConfig()})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Paths.VocabPath != "custom-vocab.json" {
		t.Errorf("VocabPath = %q, want custom-vocab.json", cfg.Paths.VocabPath)
	}
	if cfg.Train.VocabSize != 777 {
		t.Errorf("VocabSize = %d, want 777", cfg.Train.VocabSize)
	}
	// Unset keys fall back to defaults.
	if cfg.Paths.MergesPath != "merges.json" {
		t.Errorf("MergesPath = %q, want default merges.json", cfg.Paths.MergesPath)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(LoadOptions{
		ConfigFile: filepath.Join(t.TempDir(), "absent.yaml"),
		Defaults:   DefaultConfig(),
	})
	if err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

// ---------------------------------------------------------------------------
// NormalizeFormat / ParseLogLevel
// ---------------------------------------------------------------------------

func TestNormalizeFormat(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", FormatNative, false},
		{"native", FormatNative, false},
		{"OpenAI", FormatOpenAI, false},
		{" openai ", FormatOpenAI, false},
		{"tiktoken", "", true},
	}

	for _, tc := range cases {
		got, err := NormalizeFormat(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("NormalizeFormat(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizeFormat(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("NormalizeFormat(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"info", slog.LevelInfo, false},
		{"DEBUG", slog.LevelDebug, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tc := range cases {
		got, err := ParseLogLevel(tc.in)
		if tc.wantErr != (err != nil) {
			t.Errorf("ParseLogLevel(%q) error = %v, wantErr = %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
