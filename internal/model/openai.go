package model

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/example/go-bpe/internal/tokenizer"
	"github.com/example/go-bpe/internal/vocab"
)

// endOfText is the reserved token preferred when synthesizing a newline
// entry for vocabularies that lack one.
const endOfText = "<|endoftext|>"

// LoadOpenAI reads an externally trained vocabulary and rank file. The
// vocabulary file is a JSON token->ID mapping; the rank file's first line is
// a header, and every following line holds two whitespace-separated token
// strings whose line ordinal is the pair's rank. Lines with a different
// field count, or referencing strings outside the loaded vocabulary, are
// skipped: rank files are routinely denser than the vocabulary they ship
// with.
//
// If no token maps to a literal newline, one is synthesized by repurposing
// the end-of-text token's ID, falling back to the space marker's; with
// neither present the vocabulary cannot represent line boundaries and the
// load fails with ErrInvalidData.
func LoadOpenAI(vocabPath, mergesPath string) (*tokenizer.Tokenizer, error) {
	tbl, err := loadOpenAIVocab(vocabPath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(mergesPath)
	if err != nil {
		return nil, fmt.Errorf("read rank file: %w", err)
	}

	var pairs []tokenizer.RankedMerge
	lines := strings.Split(string(data), "\n")
	for rank, line := range lines[1:] {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		if !tbl.Contains(fields[0]) || !tbl.Contains(fields[1]) {
			continue
		}
		pairs = append(pairs, tokenizer.RankedMerge{Left: fields[0], Right: fields[1], Rank: rank})
	}

	return tokenizer.NewFromRanks(tbl, pairs), nil
}

// loadOpenAIVocab reads a token->ID mapping, inverts it into a table, and
// guarantees a newline token exists.
func loadOpenAIVocab(path string) (*vocab.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}

	var entries map[string]int
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%s: parse vocabulary (%v): %w", path, err, ErrInvalidData)
	}

	tbl := vocab.New()
	for token, id := range entries {
		if err := tbl.Put(id, token); err != nil {
			return nil, fmt.Errorf("%s: vocabulary entry %q (%v): %w", path, token, err, ErrInvalidData)
		}
	}

	if !tbl.Contains("\n") {
		if err := synthesizeNewline(tbl); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}

	return tbl, nil
}

func synthesizeNewline(tbl *vocab.Table) error {
	for _, sentinel := range []string{endOfText, tokenizer.SpaceMarker} {
		id, err := tbl.ID(sentinel)
		if err != nil {
			continue
		}

		return tbl.Repurpose(id, "\n")
	}

	return fmt.Errorf("no token suitable for newline: %w", ErrInvalidData)
}
