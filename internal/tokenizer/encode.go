package tokenizer

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// specialShaped matches any literal using the reserved special-token bracket
// convention, allowed or not.
var specialShaped = regexp.MustCompile(`<\|.*?\|>`)

// Encode converts text to token IDs.
//
// When allowedSpecial is non-empty, literal occurrences of the allowed
// special tokens are carved out of the text first and emitted as single IDs;
// the spans between matches are encoded normally. Any special-token-shaped
// literal in the text that is not in the allowed set is rejected with
// ErrInvalidInput rather than silently passed through.
//
// With an empty allowedSpecial no carve-out happens and special-shaped
// literals are encoded character by character like any other text.
func (t *Tokenizer) Encode(text string, allowedSpecial []string) ([]int, error) {
	if len(allowedSpecial) == 0 {
		return t.encodeText(text)
	}

	allowed := make(map[string]struct{}, len(allowedSpecial))
	for _, sp := range allowedSpecial {
		allowed[sp] = struct{}{}
	}

	ids := []int{}
	last := 0
	re := specialPattern(allowedSpecial)
	for _, m := range re.FindAllStringIndex(text, -1) {
		span, err := t.encodeText(text[last:m[0]])
		if err != nil {
			return nil, err
		}
		ids = append(ids, span...)

		id, err := t.vocab.ID(text[m[0]:m[1]])
		if err != nil {
			return nil, fmt.Errorf("special token: %w", err)
		}
		ids = append(ids, id)

		last = m[1]
	}

	span, err := t.encodeText(text[last:])
	if err != nil {
		return nil, err
	}
	ids = append(ids, span...)

	for _, lit := range specialShaped.FindAllString(text, -1) {
		if _, ok := allowed[lit]; !ok {
			return nil, fmt.Errorf("disallowed special token %q in text: %w", lit, ErrInvalidInput)
		}
	}

	return ids, nil
}

// specialPattern compiles an alternation of the quoted special tokens.
// Longer tokens come first so overlapping candidates at the same position
// resolve to the longest literal.
func specialPattern(tokens []string) *regexp.Regexp {
	sorted := make([]string, len(tokens))
	copy(sorted, tokens)
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) > len(sorted[j])
		}

		return sorted[i] < sorted[j]
	})

	quoted := make([]string, len(sorted))
	for i, tok := range sorted {
		quoted[i] = regexp.QuoteMeta(tok)
	}

	return regexp.MustCompile(strings.Join(quoted, "|"))
}

// encodeText encodes text containing no special tokens: segment, then look
// each segment up whole, falling back to BPE merge application for segments
// missing from the vocabulary.
func (t *Tokenizer) encodeText(text string) ([]int, error) {
	var ids []int
	for _, seg := range segments(text) {
		if id, err := t.vocab.ID(seg); err == nil {
			ids = append(ids, id)
			continue
		}

		sub, err := t.applyMerges(seg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, sub...)
	}

	return ids, nil
}

// segments splits text into the token strings the pipeline operates on:
// a canonical newline between lines, and words with the space marker
// prefixed everywhere except the very first word of the first line. The
// marker reconstructs "word began after whitespace", which plain
// whitespace-splitting would otherwise lose.
func segments(text string) []string {
	var out []string
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			out = append(out, newlineToken)
		}
		for j, word := range strings.Fields(line) {
			if i == 0 && j == 0 {
				out = append(out, word)
			} else {
				out = append(out, SpaceMarker+word)
			}
		}
	}

	return out
}
