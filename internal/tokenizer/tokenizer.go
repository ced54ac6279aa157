// Package tokenizer implements byte-pair-encoding subword tokenization:
// training a merge table from a corpus, encoding text to token IDs and
// decoding IDs back to text.
//
// A Tokenizer carries exactly one active merge representation. Training
// produces an id-pair merge table; the external-format import path produces
// a rank table instead. The encoder selects its merge strategy from
// whichever representation is populated.
package tokenizer

import (
	"errors"

	"github.com/example/go-bpe/internal/vocab"
)

// SpaceMarker replaces every literal space before vocabulary construction so
// that word-boundary information survives tokenization.
const SpaceMarker = "Ġ" // Ġ

// newlineToken is the canonical line-boundary token.
const newlineToken = "\n"

// ErrInvalidInput is returned for malformed training or encoding input.
var ErrInvalidInput = errors.New("tokenizer: invalid input")

// idPair is an adjacent pair of token IDs.
type idPair struct {
	left, right int
}

// strPair is an adjacent pair of token strings, the key shape of rank tables.
type strPair struct {
	left, right string
}

// MergeRule records one learned merge: left followed by right rewrites to
// the token with the given ID. Rules are kept in learning order.
type MergeRule struct {
	Left  string
	Right string
	ID    int
}

// RankedMerge is one entry of an imported rank table. Rank is the entry's
// line ordinal in the source file; lower ranks are applied first.
type RankedMerge struct {
	Left  string
	Right string
	Rank  int
}

// Tokenizer owns a vocabulary plus merge data. It is immutable once training
// or loading completes and is safe for concurrent readers.
type Tokenizer struct {
	vocab    *vocab.Table
	merges   map[idPair]int  // id-pair merge table (self-trained)
	learned  []MergeRule     // learning-order mirror of merges
	ranks    map[strPair]int // rank table (imported); nil unless rank mode
	ranked   []RankedMerge   // file-order mirror of ranks
	specials map[string]struct{}
}

// New returns an empty tokenizer with an empty vocabulary.
func New() *Tokenizer {
	return &Tokenizer{
		vocab:    vocab.New(),
		merges:   make(map[idPair]int),
		specials: make(map[string]struct{}),
	}
}

// NewFromMerges builds an id-pair tokenizer from a vocabulary and merge
// rules in learning order. Each rule's constituent strings are resolved
// against tbl; an unresolvable string is reported via vocab.ErrNotFound.
func NewFromMerges(tbl *vocab.Table, rules []MergeRule) (*Tokenizer, error) {
	t := &Tokenizer{
		vocab:    tbl,
		merges:   make(map[idPair]int, len(rules)),
		learned:  make([]MergeRule, 0, len(rules)),
		specials: make(map[string]struct{}),
	}

	for _, r := range rules {
		left, err := tbl.ID(r.Left)
		if err != nil {
			return nil, err
		}

		right, err := tbl.ID(r.Right)
		if err != nil {
			return nil, err
		}

		t.merges[idPair{left, right}] = r.ID
		t.learned = append(t.learned, r)
	}

	return t, nil
}

// NewFromRanks builds a rank-mode tokenizer from a vocabulary and an
// ordered rank table.
func NewFromRanks(tbl *vocab.Table, pairs []RankedMerge) *Tokenizer {
	t := &Tokenizer{
		vocab:    tbl,
		ranks:    make(map[strPair]int, len(pairs)),
		ranked:   make([]RankedMerge, 0, len(pairs)),
		specials: make(map[string]struct{}),
	}

	for _, p := range pairs {
		t.ranks[strPair{p.Left, p.Right}] = p.Rank
		t.ranked = append(t.ranked, p)
	}

	return t
}

// Vocab returns the tokenizer's vocabulary table.
func (t *Tokenizer) Vocab() *vocab.Table {
	return t.vocab
}

// Merges returns the learned merge rules in learning order. The slice is
// empty for rank-mode tokenizers.
func (t *Tokenizer) Merges() []MergeRule {
	out := make([]MergeRule, len(t.learned))
	copy(out, t.learned)

	return out
}

// Ranked returns the imported rank table in file order. The slice is empty
// for self-trained tokenizers.
func (t *Tokenizer) Ranked() []RankedMerge {
	out := make([]RankedMerge, len(t.ranked))
	copy(out, t.ranked)

	return out
}

// MergeCount reports the number of merge rules in the active representation.
func (t *Tokenizer) MergeCount() int {
	if t.rankMode() {
		return len(t.ranks)
	}

	return len(t.learned)
}

// rankMode reports whether the rank strategy drives merge application.
func (t *Tokenizer) rankMode() bool {
	return len(t.ranks) > 0
}
