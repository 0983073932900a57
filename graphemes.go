package termcore

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// splitGraphemes walks s cluster by cluster (not rune by rune), converting
// each grapheme cluster into a TChar. s is normalized to NFC first so a
// combining mark that arrived as a separate rune from its base character
// (common over a raw PTY stream) composes into the same cluster uniseg
// would find for an already-composed source; uniwidth then sizes the
// result (width.go), per §9's "UTF-8 grapheme splitting should use a
// proper grapheme-cluster iterator".
func splitGraphemes(s string) []TChar {
	if s == "" {
		return nil
	}
	s = norm.NFC.String(s)
	out := make([]TChar, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, NewUtf8TChar(g.Str()))
	}
	return out
}

// splitTrailingPartialUTF8 separates a byte slice into a valid-to-decode
// prefix and a trailing partial multi-byte sequence (if any), per §4.5's
// insert_data contract and §7's "UTF-8 partial at end of chunk" handling.
// The returned leftover is meant to be prepended to the next chunk.
func splitTrailingPartialUTF8(b []byte) (valid, leftover []byte) {
	if len(b) == 0 {
		return b, nil
	}

	// Walk back at most 3 bytes (the longest possible partial prefix of a
	// 4-byte UTF-8 sequence) looking for the start of a multi-byte
	// sequence that the tail doesn't complete.
	limit := 3
	if limit > len(b) {
		limit = len(b)
	}
	for back := 1; back <= limit; back++ {
		i := len(b) - back
		lead := b[i]
		if lead < 0x80 {
			// ASCII byte: definitely complete, nothing partial here.
			return b, nil
		}
		if lead&0xC0 == 0x80 {
			// Continuation byte; keep walking back to find the leader.
			continue
		}
		want := utf8SeqLen(lead)
		if want == 0 {
			// Not a valid leader at all; leave it for the invalid-byte
			// recovery path (sanitizeUTF8) rather than buffering it.
			return b, nil
		}
		if back < want {
			return b[:i], b[i:]
		}
		return b, nil
	}
	return b, nil
}

// utf8SeqLen returns the expected total length of a UTF-8 sequence given
// its leading byte, or 0 if the byte is not a valid sequence leader.
func utf8SeqLen(lead byte) int {
	switch {
	case lead&0x80 == 0x00:
		return 1
	case lead&0xE0 == 0xC0:
		return 2
	case lead&0xF0 == 0xE0:
		return 3
	case lead&0xF8 == 0xF0:
		return 4
	default:
		return 0
	}
}

// sanitizeUTF8 returns b as a string, dropping any byte that can't be
// decoded as UTF-8 (§7: "UTF-8 invalid: drop one byte and retry"). Callers
// are expected to have already stripped a trailing partial sequence via
// splitTrailingPartialUTF8, so what remains is either valid or genuinely
// malformed.
func sanitizeUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	out := make([]byte, 0, len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size <= 1 {
			b = b[1:]
			continue
		}
		out = append(out, b[:size]...)
		b = b[size:]
	}
	return string(out)
}
