package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/example/go-bpe/internal/tokenizer"
	"github.com/example/go-bpe/internal/vocab"
)

// Load reads a native-format vocabulary/merges pair and reconstructs the
// tokenizer. The merge table is rebuilt by re-resolving each record's
// constituent strings against the loaded vocabulary; a record referencing a
// string absent from the vocabulary fails with ErrInvalidData.
func Load(vocabPath, mergesPath string) (*tokenizer.Tokenizer, error) {
	tbl, err := loadVocab(vocabPath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(mergesPath)
	if err != nil {
		return nil, fmt.Errorf("read merges: %w", err)
	}

	var records []mergeRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%s: parse merges (%v): %w", mergesPath, err, ErrInvalidData)
	}

	rules := make([]tokenizer.MergeRule, len(records))
	for i, r := range records {
		rules[i] = tokenizer.MergeRule{Left: r.Left, Right: r.Right, ID: r.ID}
	}

	tok, err := tokenizer.NewFromMerges(tbl, rules)
	if err != nil {
		return nil, fmt.Errorf("%s: rebuild merge table (%v): %w", mergesPath, err, ErrInvalidData)
	}

	return tok, nil
}

// loadVocab reads the native JSON ID->token mapping into a fresh table.
func loadVocab(path string) (*vocab.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}

	var entries map[int]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%s: parse vocabulary (%v): %w", path, err, ErrInvalidData)
	}

	tbl := vocab.New()
	for id, token := range entries {
		if err := tbl.Put(id, token); err != nil {
			return nil, fmt.Errorf("%s: vocabulary entry %d (%v): %w", path, id, err, ErrInvalidData)
		}
	}

	return tbl, nil
}
