package tokenizer

import (
	"cmp"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	heap "github.com/emirpasic/gods/v2/trees/binaryheap"
)

// trainWord is one distinct word of the corpus: its current symbol sequence
// and how often the word occurs. Merge counting is weighted by count, so each
// training iteration scales with the number of distinct words rather than
// with corpus length.
type trainWord struct {
	syms  []int
	count int
}

// pairCount is a candidate merge with its corpus-wide weighted frequency.
// The constituent strings ride along so the selection order is total.
type pairCount struct {
	pair  idPair
	left  string
	right string
	n     int
}

// Train learns a BPE vocabulary and merge table from text. Merging continues
// until the vocabulary reaches targetVocabSize or no eligible adjacent pair
// remains; running out of pairs early is a normal, successful stop. Special
// tokens are inserted as atomic vocabulary entries and never participate in
// merges.
//
// Equal-frequency candidates are broken deterministically: the pair with the
// lexicographically smaller (left, right) strings wins. Training the same
// corpus twice therefore yields identical vocabularies and merge orders.
func Train(text string, targetVocabSize int, specials []string) (*Tokenizer, error) {
	if text == "" {
		return nil, fmt.Errorf("empty training text: %w", ErrInvalidInput)
	}

	t := New()
	if err := t.seed(text, specials); err != nil {
		return nil, err
	}

	words, err := t.corpusWords(text)
	if err != nil {
		return nil, err
	}

	for t.vocab.Len() < targetVocabSize {
		best, n := t.bestPair(words)
		if n == 0 {
			break // no eligible pair left
		}

		leftTok, _ := t.vocab.Token(best.left)
		rightTok, _ := t.vocab.Token(best.right)
		merged := leftTok + rightTok

		id, err := t.vocab.ID(merged)
		if err != nil {
			// Distinct pairs can concatenate to the same string; only mint a
			// new ID for a string the vocabulary has not seen.
			id, err = t.vocab.Add(merged)
			if err != nil {
				return nil, fmt.Errorf("record merge %q+%q: %w", leftTok, rightTok, err)
			}
		}

		t.merges[best] = id
		t.learned = append(t.learned, MergeRule{Left: leftTok, Right: rightTok, ID: id})

		for _, w := range words {
			w.syms = replacePair(w.syms, best, id)
		}
	}

	slog.Debug("bpe training complete",
		"vocab_size", t.vocab.Len(),
		"merges", len(t.learned),
		"distinct_words", len(words))

	return t, nil
}

// seed builds the initial character-level vocabulary: every character of the
// marker-substituted corpus, the full ASCII range, the space marker, then the
// special tokens. Characters are inserted in ascending code-point order so
// that ID assignment is reproducible.
func (t *Tokenizer) seed(text string, specials []string) error {
	processed := strings.ReplaceAll(text, " ", SpaceMarker)

	seen := make(map[rune]struct{})
	for _, r := range processed {
		seen[r] = struct{}{}
	}
	for b := 0; b < 128; b++ {
		seen[rune(b)] = struct{}{}
	}

	chars := make([]rune, 0, len(seen))
	for r := range seen {
		chars = append(chars, r)
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })

	for _, r := range chars {
		if _, err := t.vocab.Add(string(r)); err != nil {
			return fmt.Errorf("seed vocabulary: %w", err)
		}
	}

	if !t.vocab.Contains(SpaceMarker) {
		if _, err := t.vocab.Add(SpaceMarker); err != nil {
			return fmt.Errorf("seed space marker: %w", err)
		}
	}

	for _, sp := range specials {
		if !t.vocab.Contains(sp) {
			if _, err := t.vocab.Add(sp); err != nil {
				return fmt.Errorf("seed special token %q: %w", sp, err)
			}
		}
		t.specials[sp] = struct{}{}
	}

	return nil
}

// corpusWords segments text exactly like the encoder (lines, marker-prefixed
// words, atomic newline units) and folds duplicates into weighted entries.
func (t *Tokenizer) corpusWords(text string) ([]*trainWord, error) {
	counts := make(map[string]int)
	var order []string

	for _, seg := range segments(text) {
		if _, ok := counts[seg]; !ok {
			order = append(order, seg)
		}
		counts[seg]++
	}

	words := make([]*trainWord, 0, len(order))
	for _, seg := range order {
		syms := make([]int, 0, len(seg))
		for _, r := range seg {
			id, err := t.vocab.ID(string(r))
			if err != nil {
				return nil, fmt.Errorf("corpus character %q: %w", r, err)
			}
			syms = append(syms, id)
		}
		words = append(words, &trainWord{syms: syms, count: counts[seg]})
	}

	return words, nil
}

// bestPair tallies adjacent-pair frequencies over all words and returns the
// winning pair with its count. Pairs touching a special token are excluded.
// A zero count means no eligible pair exists.
func (t *Tokenizer) bestPair(words []*trainWord) (idPair, int) {
	freq := make(map[idPair]int)
	for _, w := range words {
		for i := 0; i+1 < len(w.syms); i++ {
			freq[idPair{w.syms[i], w.syms[i+1]}] += w.count
		}
	}

	candidates := heap.NewWith(func(a, b pairCount) int {
		if a.n != b.n {
			return cmp.Compare(b.n, a.n)
		}
		if a.left != b.left {
			return cmp.Compare(a.left, b.left)
		}

		return cmp.Compare(a.right, b.right)
	})

	for p, n := range freq {
		left, _ := t.vocab.Token(p.left)
		right, _ := t.vocab.Token(p.right)
		if t.isSpecial(left) || t.isSpecial(right) {
			continue
		}
		candidates.Push(pairCount{pair: p, left: left, right: right, n: n})
	}

	top, ok := candidates.Pop()
	if !ok {
		return idPair{}, 0
	}

	return top.pair, top.n
}

func (t *Tokenizer) isSpecial(token string) bool {
	_, ok := t.specials[token]
	return ok
}

// replacePair rewrites all non-overlapping left-to-right occurrences of pair
// in syms with id.
func replacePair(syms []int, pair idPair, id int) []int {
	out := make([]int, 0, len(syms))
	for i := 0; i < len(syms); {
		if i+1 < len(syms) && syms[i] == pair.left && syms[i+1] == pair.right {
			out = append(out, id)
			i += 2
		} else {
			out = append(out, syms[i])
			i++
		}
	}

	return out
}
