package config

import (
	"fmt"
	"log/slog"
	"strings"
)

const (
	FormatNative = "native"
	FormatOpenAI = "openai"
)

// NormalizeFormat canonicalizes a model file format name. An empty string
// means the native format.
func NormalizeFormat(raw string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(raw))
	if format == "" {
		format = FormatNative
	}
	switch format {
	case FormatNative, FormatOpenAI:
		return format, nil
	default:
		return "", fmt.Errorf("invalid format %q (expected %s|%s)", raw, FormatNative, FormatOpenAI)
	}
}

// ParseLogLevel converts a case-insensitive level string to slog.Level.
// An empty string returns slog.LevelInfo. Unknown strings return an error.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug|info|warn|error)", s)
	}
}
