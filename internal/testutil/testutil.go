// Package testutil provides shared fixtures for tokenizer tests: a tiny
// training corpus, pre-trained tokenizers, and temp-dir model files.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/example/go-bpe/internal/model"
	"github.com/example/go-bpe/internal/tokenizer"
)

// TinyCorpus is a small corpus with enough repetition to learn useful
// merges at modest vocabulary sizes.
const TinyCorpus = "hello world hello there hello everyone"

// TrainTiny trains a tokenizer on TinyCorpus and fails the test on error.
func TrainTiny(tb testing.TB, vocabSize int, specials ...string) *tokenizer.Tokenizer {
	tb.Helper()

	tok, err := tokenizer.Train(TinyCorpus, vocabSize, specials)
	if err != nil {
		tb.Fatalf("train on tiny corpus: %v", err)
	}

	return tok
}

// WriteModel saves tok in the native format under a test temp dir and
// returns the vocabulary and merges paths.
func WriteModel(tb testing.TB, tok *tokenizer.Tokenizer) (vocabPath, mergesPath string) {
	tb.Helper()

	dir := tb.TempDir()
	vocabPath = filepath.Join(dir, "vocab.json")
	mergesPath = filepath.Join(dir, "merges.json")

	if err := model.Save(tok, vocabPath, mergesPath); err != nil {
		tb.Fatalf("save model: %v", err)
	}

	return vocabPath, mergesPath
}

// WriteFile writes content under a test temp dir and returns its path.
func WriteFile(tb testing.TB, name, content string) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		tb.Fatalf("write %s: %v", name, err)
	}

	return path
}
