package termcore

// SimpleEscapeParser handles the two-byte `ESC <intermediate> <designator>`
// escapes seeded by AnsiParser on {space, #, %, (, ), *, +} (§4.1). It
// always completes on the very next byte.
type SimpleEscapeParser struct {
	intermediate byte
	designator   byte
	done         bool
}

// NewSimpleEscapeParser seeds the parser with the intermediate byte already
// consumed by AnsiParser's Escape-state dispatch.
func NewSimpleEscapeParser(intermediate byte) *SimpleEscapeParser {
	return &SimpleEscapeParser{intermediate: intermediate}
}

// Push feeds the designator byte, completing the sequence.
func (s *SimpleEscapeParser) Push(b byte) {
	s.designator = b
	s.done = true
}

// Done reports whether the designator byte has been received.
func (s *SimpleEscapeParser) Done() bool { return s.done }

// dispatch emits the event for this escape, per §4.1/§4.7's
// Dec-Special-Graphics toggle. Only G0 charset designation is wired to an
// event: G1-G3 designation and SI/SO active-slot switching aren't part of
// the §6 event contract, so they log as Skipped rather than being invented.
func (s *SimpleEscapeParser) dispatch(out *[]TerminalOutput) {
	switch s.intermediate {
	case '(':
		switch s.designator {
		case '0':
			*out = append(*out, TerminalOutput{Kind: KindDecSpecialGraphics, GraphicsOn: true})
		case 'B', 'A':
			*out = append(*out, TerminalOutput{Kind: KindDecSpecialGraphics, GraphicsOn: false})
		default:
			*out = append(*out, newEvent(KindInvalid))
		}
	case ')', '*', '+', ' ', '#', '%':
		*out = append(*out, newEvent(KindSkipped))
	default:
		*out = append(*out, newEvent(KindInvalid))
	}
}
