package termcore

// TCharKind discriminates the four displayable-cell variants of §3.
type TCharKind uint8

const (
	// TCharKindAscii holds a single printable ASCII byte (0x01-0x7F, excluding
	// LF and space, which have their own sentinel variants).
	TCharKindAscii TCharKind = iota
	// TCharKindSpace is the sentinel equivalent of 0x20.
	TCharKindSpace
	// TCharKindNewLine is the sentinel equivalent of 0x0A.
	TCharKindNewLine
	// TCharKindUtf8 holds exactly one multi-byte UTF-8 grapheme cluster.
	TCharKindUtf8
)

// TChar is one displayable cell: an ASCII byte, the space/newline
// sentinels, or a UTF-8 grapheme cluster. A Utf8 TChar never holds a
// single-byte ASCII sequence; Ascii/Space/NewLine exist so single-byte
// comparisons stay cheap.
type TChar struct {
	kind TCharKind
	b    byte
	s    string
}

// NewAsciiTChar builds an Ascii TChar. 0x20 and 0x0A are returned as the
// Space and NewLine sentinels; panics if b falls outside 0x01-0x7F.
func NewAsciiTChar(b byte) TChar {
	if b == 0x20 {
		return SpaceTChar()
	}
	if b == 0x0A {
		return NewLineTChar()
	}
	if b < 0x01 || b > 0x7F {
		panic("termcore: NewAsciiTChar requires 0x01-0x7F excluding space and newline")
	}
	return TChar{kind: TCharKindAscii, b: b}
}

// SpaceTChar returns the space sentinel.
func SpaceTChar() TChar { return TChar{kind: TCharKindSpace, b: 0x20} }

// NewLineTChar returns the newline sentinel.
func NewLineTChar() TChar { return TChar{kind: TCharKindNewLine, b: 0x0A} }

// NewUtf8TChar wraps a multi-byte grapheme cluster. If the cluster turns out
// to be a single ASCII byte it is normalized through TCharFromByte (Ascii,
// Space or NewLine) instead, preserving the §3 invariant that Utf8 never holds single ASCII.
func NewUtf8TChar(s string) TChar {
	if len(s) == 1 {
		return TCharFromByte(s[0])
	}
	return TChar{kind: TCharKindUtf8, s: s}
}

// TCharFromByte classifies a single raw byte into the matching TChar
// variant. Bytes outside the printable/space/newline range are still
// represented (as Ascii) so callers processing a raw stream never lose
// data; control-byte filtering happens upstream in the parser.
func TCharFromByte(b byte) TChar {
	switch b {
	case 0x20:
		return SpaceTChar()
	case 0x0A:
		return NewLineTChar()
	default:
		return TChar{kind: TCharKindAscii, b: b}
	}
}

// Kind reports which variant this TChar holds.
func (c TChar) Kind() TCharKind { return c.kind }

// IsNewLine reports whether this is the newline sentinel.
func (c TChar) IsNewLine() bool { return c.kind == TCharKindNewLine }

// IsSpace reports whether this is the space sentinel.
func (c TChar) IsSpace() bool { return c.kind == TCharKindSpace }

// Byte returns the raw byte and true for single-byte variants (Ascii,
// Space, NewLine); ok is false for Utf8.
func (c TChar) Byte() (b byte, ok bool) {
	if c.kind == TCharKindUtf8 {
		return 0, false
	}
	return c.b, true
}

// String renders the TChar as a Go string suitable for concatenation into
// line content.
func (c TChar) String() string {
	switch c.kind {
	case TCharKindUtf8:
		return c.s
	case TCharKindNewLine:
		return "\n"
	case TCharKindSpace:
		return " "
	default:
		return string(c.b)
	}
}

// EqualByte compares a single-byte variant against a raw byte. Always false
// for Utf8, matching §3's "equality with a raw byte is defined only for
// single-byte variants".
func (c TChar) EqualByte(b byte) bool {
	v, ok := c.Byte()
	return ok && v == b
}

// Width returns the display width of the cell: 0 for NewLine, 1 for Ascii
// and Space, and the grapheme-cluster's measured width for Utf8 (see
// width.go).
func (c TChar) Width() int {
	switch c.kind {
	case TCharKindNewLine:
		return 0
	case TCharKindUtf8:
		return StringWidth(c.s)
	default:
		return 1
	}
}
