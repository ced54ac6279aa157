package tokenizer

import (
	"errors"
	"testing"

	"github.com/example/go-bpe/internal/vocab"
)

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// ---------------------------------------------------------------------------
// Plain text
// ---------------------------------------------------------------------------

func TestEncode_Deterministic(t *testing.T) {
	tok := trainTiny(t, 150)

	first, err := tok.Encode("hello world", nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	second, err := tok.Encode("hello world", nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	if !equalIDs(first, second) {
		t.Errorf("encoding not deterministic: %v vs %v", first, second)
	}
}

func TestEncode_EmptyText(t *testing.T) {
	tok := trainTiny(t, 150)

	ids, err := tok.Encode("", nil)
	if err != nil {
		t.Fatalf("Encode(\"\"): %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("Encode(\"\") = %v, want empty", ids)
	}
}

func TestEncode_WholeSegmentLookup(t *testing.T) {
	// Vocabulary large enough that "Ġhello" becomes a single token.
	tok := trainTiny(t, 200)

	hello, err := tok.Vocab().ID(SpaceMarker + "hello")
	if err != nil {
		t.Skipf("Ġhello not learned at this vocab size: %v", err)
	}

	ids, err := tok.Encode("there hello", nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if ids[len(ids)-1] != hello {
		t.Errorf("last ID = %d, want whole-segment %d", ids[len(ids)-1], hello)
	}
}

func TestEncode_UnknownCharacterFails(t *testing.T) {
	tok := trainTiny(t, 150)

	_, err := tok.Encode("héllo", nil)
	if !errors.Is(err, vocab.ErrNotFound) {
		t.Errorf("Encode error = %v, want vocab.ErrNotFound", err)
	}
}

// ---------------------------------------------------------------------------
// Special tokens
// ---------------------------------------------------------------------------

func TestEncode_AllowedSpecialIsAtomic(t *testing.T) {
	tok := trainTiny(t, 150, "<|endoftext|>")

	want, err := tok.Vocab().ID("<|endoftext|>")
	if err != nil {
		t.Fatalf("special token ID: %v", err)
	}

	ids, err := tok.Encode("hello <|endoftext|>", []string{"<|endoftext|>"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	matches := 0
	for _, id := range ids {
		if id == want {
			matches++
		}
	}
	if matches != 1 {
		t.Errorf("special token ID appears %d times, want exactly 1 (ids=%v)", matches, ids)
	}
}

func TestEncode_DisallowedSpecialFails(t *testing.T) {
	tok := trainTiny(t, 150, "<|endoftext|>")

	_, err := tok.Encode("hello <|secret|>", []string{"<|endoftext|>"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Encode error = %v, want ErrInvalidInput", err)
	}
}

func TestEncode_NoCarveOutWithoutAllowedSet(t *testing.T) {
	tok := trainTiny(t, 150, "<|endoftext|>")

	// With no allowed set the literal is plain text. Fused into a larger
	// segment it is encoded character by character, never as the reserved
	// ID, and never rejected.
	want, err := tok.Vocab().ID("<|endoftext|>")
	if err != nil {
		t.Fatalf("special token ID: %v", err)
	}

	ids, err := tok.Encode("x<|endoftext|>", nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	for _, id := range ids {
		if id == want {
			t.Errorf("reserved ID %d emitted without carve-out", want)
		}
	}
}

func TestEncode_AllowedSpecialMissingFromVocab(t *testing.T) {
	tok := trainTiny(t, 150) // trained without specials

	_, err := tok.Encode("x<|eot|>y", []string{"<|eot|>"})
	if !errors.Is(err, vocab.ErrNotFound) {
		t.Errorf("Encode error = %v, want vocab.ErrNotFound", err)
	}
}

// ---------------------------------------------------------------------------
// Segmentation
// ---------------------------------------------------------------------------

func TestSegments(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"single word", "hello", []string{"hello"}},
		{"two words", "hello world", []string{"hello", SpaceMarker + "world"}},
		{"two lines", "hello\nworld", []string{"hello", "\n", SpaceMarker + "world"}},
		{"leading newline", "\nworld", []string{"\n", SpaceMarker + "world"}},
		{"empty", "", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := segments(tc.in)
			if len(got) != len(tc.want) {
				t.Fatalf("segments(%q) = %v, want %v", tc.in, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("segment %d = %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}
