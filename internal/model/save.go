// Package model persists trained tokenizers. Two on-disk shapes are
// supported: the native format (a JSON ID->token vocabulary plus an ordered
// JSON merge list) and the OpenAI-style import format (a JSON token->ID
// vocabulary plus a whitespace-separated rank file).
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/example/go-bpe/internal/tokenizer"
)

// ErrInvalidData is returned for malformed persisted files: structurally
// wrong records or references to strings absent from the loaded vocabulary.
var ErrInvalidData = errors.New("model: invalid data")

// mergeRecord is one entry of the native merges file, in learning order.
type mergeRecord struct {
	Left  string `json:"left"`
	Right string `json:"right"`
	ID    int    `json:"id"`
}

// Save writes tok's vocabulary and merge rules to the two native-format
// paths. Files written by Save round-trip exactly through Load.
func Save(tok *tokenizer.Tokenizer, vocabPath, mergesPath string) error {
	vocabData, err := json.MarshalIndent(tok.Vocab().Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal vocabulary: %w", err)
	}
	if err := os.WriteFile(vocabPath, vocabData, 0o644); err != nil {
		return fmt.Errorf("write vocabulary: %w", err)
	}

	records := nativeRecords(tok)
	mergesData, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal merges: %w", err)
	}
	if err := os.WriteFile(mergesPath, mergesData, 0o644); err != nil {
		return fmt.Errorf("write merges: %w", err)
	}

	return nil
}

// nativeRecords converts tok's active merge representation to native merge
// records. For a rank-mode tokenizer the merged ID of each pair is resolved
// through the vocabulary; pairs whose concatenation is not a vocabulary
// entry cannot be expressed natively and are skipped, mirroring the
// leniency of the rank-file import.
func nativeRecords(tok *tokenizer.Tokenizer) []mergeRecord {
	if rules := tok.Merges(); len(rules) > 0 {
		records := make([]mergeRecord, len(rules))
		for i, r := range rules {
			records[i] = mergeRecord{Left: r.Left, Right: r.Right, ID: r.ID}
		}

		return records
	}

	records := []mergeRecord{}
	for _, p := range tok.Ranked() {
		id, err := tok.Vocab().ID(p.Left + p.Right)
		if err != nil {
			continue
		}
		records = append(records, mergeRecord{Left: p.Left, Right: p.Right, ID: id})
	}

	return records
}
