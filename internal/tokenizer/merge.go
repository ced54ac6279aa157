package tokenizer

import (
	"fmt"
)

// applyMerges tokenizes one out-of-vocabulary segment: decompose into
// single-character base tokens, then merge using whichever representation
// this tokenizer carries.
func (t *Tokenizer) applyMerges(segment string) ([]int, error) {
	ids := make([]int, 0, len(segment))
	for _, r := range segment {
		id, err := t.vocab.ID(string(r))
		if err != nil {
			return nil, fmt.Errorf("character %q: %w", r, err)
		}
		ids = append(ids, id)
	}

	if t.rankMode() {
		return t.mergeByRank(ids)
	}

	return t.mergeByPair(ids), nil
}

// mergeByPair applies the id-pair merge table: full left-to-right passes,
// replacing every recorded adjacent pair, until a pass changes nothing or a
// single symbol remains.
func (t *Tokenizer) mergeByPair(ids []int) []int {
	for len(ids) > 1 {
		merged := false
		out := make([]int, 0, len(ids))
		i := 0
		for i < len(ids)-1 {
			if id, ok := t.merges[idPair{ids[i], ids[i+1]}]; ok {
				out = append(out, id)
				i += 2
				merged = true
			} else {
				out = append(out, ids[i])
				i++
			}
		}
		if i < len(ids) {
			out = append(out, ids[i])
		}

		ids = out
		if !merged {
			break
		}
	}

	return ids
}

// mergeByRank applies an imported rank table: each round finds the adjacent
// string pair with the lowest rank and merges all its non-overlapping
// occurrences, repeating until no ranked pair remains. This reproduces the
// standard rank-table BPE inference, so tables trained elsewhere tokenize
// identically here.
func (t *Tokenizer) mergeByRank(ids []int) ([]int, error) {
	syms := make([]string, len(ids))
	for i, id := range ids {
		// ids were just resolved from the vocabulary; lookups cannot fail.
		syms[i], _ = t.vocab.Token(id)
	}

	for len(syms) > 1 {
		best := strPair{}
		bestRank := -1
		for i := 0; i+1 < len(syms); i++ {
			p := strPair{syms[i], syms[i+1]}
			r, ok := t.ranks[p]
			if !ok {
				continue
			}
			if bestRank < 0 || r < bestRank {
				best = p
				bestRank = r
			}
		}
		if bestRank < 0 {
			break
		}

		syms = mergeAll(syms, best)
	}

	out := make([]int, len(syms))
	for i, s := range syms {
		id, err := t.vocab.ID(s)
		if err != nil {
			return nil, fmt.Errorf("merged symbol %q: %w", s, err)
		}
		out[i] = id
	}

	return out, nil
}

// mergeAll replaces every non-overlapping left-to-right occurrence of pair
// in syms with its concatenation.
func mergeAll(syms []string, pair strPair) []string {
	out := make([]string, 0, len(syms))
	for i := 0; i < len(syms); {
		if i+1 < len(syms) && syms[i] == pair.left && syms[i+1] == pair.right {
			out = append(out, pair.left+pair.right)
			i += 2
		} else {
			out = append(out, syms[i])
			i++
		}
	}

	return out
}
