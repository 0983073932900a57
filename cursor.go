package termcore

// CursorStyle determines how the cursor is rendered (DECSCUSR, §6
// CursorVisualStyle).
type CursorStyle int

const (
	CursorStyleBlinkingBlock CursorStyle = iota
	CursorStyleSteadyBlock
	CursorStyleBlinkingUnderline
	CursorStyleSteadyUnderline
	CursorStyleBlinkingBar
	CursorStyleSteadyBar
)

// CursorPos is a 0-based (x, y) position in the visible screen (§3).
type CursorPos struct {
	X int
	Y int
}

// CursorState is the "pen": position plus the attributes applied to the
// next written character, carried forward across writes (§3).
type CursorState struct {
	Pos   CursorPos
	Attrs FormatAttrs
	Style CursorStyle
}

// NewCursorState returns a cursor at (0, 0) with default attributes.
func NewCursorState() CursorState {
	return CursorState{Pos: CursorPos{X: 0, Y: 0}, Attrs: defaultFormatAttrs()}
}

// Charset selects the character-encoding variant for a G0-G3 slot (§4.1
// SimpleEscapeParser charset designation).
type Charset int

const (
	CharsetASCII Charset = iota
	CharsetDECSpecialGraphics
)

// CharsetIndex selects one of four character-set slots.
type CharsetIndex int

const (
	CharsetIndexG0 CharsetIndex = iota
	CharsetIndexG1
	CharsetIndexG2
	CharsetIndexG3
)

// SavedCursor captures cursor position, pen attributes, and charset
// selection for DECSC/DECRC (Buffer.SaveCursor/RestoreCursor).
// Primary/alternate screen switches do not use it: each Buffer keeps its own
// cursor.
type SavedCursor struct {
	Pos           CursorPos
	Attrs         FormatAttrs
	OriginMode    bool
	ActiveCharset CharsetIndex
	Charsets      [4]Charset
}
