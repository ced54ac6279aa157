package tokenizer

import (
	"fmt"
	"strings"
)

// Decode converts token IDs back to text in a single left-to-right pass.
// The canonical newline token emits "\n", preceded by a space when the
// output so far is non-empty and does not already end with one, so a line
// boundary never fuses with the previous word. A token carrying the space
// marker emits a space plus the rest of the token. Everything else is
// appended verbatim.
func (t *Tokenizer) Decode(ids []int) (string, error) {
	var b strings.Builder
	for _, id := range ids {
		token, err := t.vocab.Token(id)
		if err != nil {
			return "", fmt.Errorf("decode: %w", err)
		}

		switch {
		case token == newlineToken:
			out := b.String()
			if out != "" && !strings.HasSuffix(out, " ") {
				b.WriteByte(' ')
			}
			b.WriteByte('\n')
		case strings.HasPrefix(token, SpaceMarker):
			b.WriteByte(' ')
			b.WriteString(strings.TrimPrefix(token, SpaceMarker))
		default:
			b.WriteString(token)
		}
	}

	return b.String(), nil
}
