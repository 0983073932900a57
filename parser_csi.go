package termcore

// csiState is CsiParser's internal automaton state (§4.2).
type csiState int

const (
	csiParams csiState = iota
	csiIntermediates
	csiFinished
	csiInvalid
	csiInvalidFinished
)

// CsiParser accumulates bytes following `ESC [` until a final byte
// terminates the sequence (§4.2, ECMA-48 §5.4). A fresh instance is created
// on each `ESC [` entry and discarded on completion (§9).
type CsiParser struct {
	state         csiState
	params        []byte
	intermediates []byte
	final         byte
}

// NewCsiParser returns a parser ready to accept the byte after `ESC [`.
func NewCsiParser() *CsiParser {
	return &CsiParser{state: csiParams}
}

// Push feeds one byte. Pushing after Finished/InvalidFinished is a usage
// error the caller must not commit (§7); callers only call Push while
// Done() is false.
func (c *CsiParser) Push(b byte) {
	switch c.state {
	case csiParams:
		switch {
		case b >= 0x30 && b <= 0x3F:
			c.params = append(c.params, b)
		case b >= 0x20 && b <= 0x2F:
			c.intermediates = append(c.intermediates, b)
			c.state = csiIntermediates
		case b >= 0x40 && b <= 0x7E:
			c.final = b
			c.state = csiFinished
		default:
			c.state = csiInvalid
		}
	case csiIntermediates:
		switch {
		case b >= 0x30 && b <= 0x3F:
			c.state = csiInvalid
		case b >= 0x20 && b <= 0x2F:
			c.intermediates = append(c.intermediates, b)
		case b >= 0x40 && b <= 0x7E:
			c.final = b
			c.state = csiFinished
		default:
			c.state = csiInvalid
		}
	case csiInvalid:
		if b >= 0x40 && b <= 0x7E {
			c.state = csiInvalidFinished
		}
	}
}

// Done reports whether the sequence is complete (validly or not).
func (c *CsiParser) Done() bool {
	return c.state == csiFinished || c.state == csiInvalidFinished
}

// csiFields holds the decoded parameter list plus the prefix/intermediate
// flags that change how individual commands interpret it (§4.2, §4.3).
type csiFields struct {
	private  bool // leading '?'
	hasColon bool // SGR subparameter form
	query    bool // '$' intermediate (DECRQM)
	vals     []int
}

func parseCsiParams(raw []byte) csiFields {
	f := csiFields{}
	s := raw
	if len(s) > 0 && s[0] == '?' {
		f.private = true
		s = s[1:]
	}
	for _, b := range s {
		if b == ':' {
			f.hasColon = true
			break
		}
	}
	sep := byte(';')
	if f.hasColon {
		sep = ':'
	}
	var cur []byte
	haveCur := false
	flush := func() {
		if !haveCur {
			f.vals = append(f.vals, -1)
			return
		}
		n := 0
		for _, c := range cur {
			if c >= '0' && c <= '9' {
				n = n*10 + int(c-'0')
			}
		}
		f.vals = append(f.vals, n)
		cur = nil
		haveCur = false
	}
	for _, b := range s {
		switch {
		case b == sep:
			flush()
		case b >= '0' && b <= '9':
			cur = append(cur, b)
			haveCur = true
		default:
			// Other param bytes (<, =, >) are accepted but not part of
			// any value this decoder currently interprets.
		}
	}
	flush()
	return f
}

// field returns vals[i] if present and non-negative, else def. Absent
// fields (missing or empty between separators) decode to -1 by
// parseCsiParams and fall back to def here (§4.2 "absent fields yield
// default").
func (f csiFields) field(i, def int) int {
	if i < 0 || i >= len(f.vals) || f.vals[i] < 0 {
		return def
	}
	return f.vals[i]
}

// motionDefault applies §4.2's "missing or 0 is interpreted as 1" rule,
// used by CUU/CUD/CUF/CUB/IL/DCH/ECH/ICH and by CUP/CHA's row/column.
func (f csiFields) motionDefault(i int) int {
	v := f.field(i, 1)
	if v == 0 {
		return 1
	}
	return v
}

// dispatch turns a Finished CsiParser into zero or more TerminalOutput
// events (§4.2's terminator table).
func (c *CsiParser) dispatch(out *[]TerminalOutput) {
	if c.state == csiInvalidFinished {
		*out = append(*out, newEvent(KindInvalid))
		return
	}
	f := parseCsiParams(c.params)

	switch c.final {
	case 'A':
		*out = append(*out, TerminalOutput{Kind: KindSetCursorPosRel, Y: SomeInt(-f.motionDefault(0))})
	case 'B':
		*out = append(*out, TerminalOutput{Kind: KindSetCursorPosRel, Y: SomeInt(f.motionDefault(0))})
	case 'C':
		*out = append(*out, TerminalOutput{Kind: KindSetCursorPosRel, X: SomeInt(f.motionDefault(0))})
	case 'D':
		*out = append(*out, TerminalOutput{Kind: KindSetCursorPosRel, X: SomeInt(-f.motionDefault(0))})
	case 'G':
		*out = append(*out, TerminalOutput{Kind: KindSetCursorPos, X: SomeInt(f.motionDefault(0))})
	case 'H', 'f':
		*out = append(*out, TerminalOutput{Kind: KindSetCursorPos, Y: SomeInt(f.motionDefault(0)), X: SomeInt(f.motionDefault(1))})
	case 'J':
		switch f.field(0, 0) {
		case 0:
			*out = append(*out, newEvent(KindClearDisplayFromCursorToEnd))
		case 1:
			*out = append(*out, newEvent(KindClearDisplayFromStartToCursor))
		case 2:
			*out = append(*out, newEvent(KindClearDisplay))
		case 3:
			*out = append(*out, newEvent(KindClearScrollbackAndDisplay))
		default:
			*out = append(*out, newEvent(KindInvalid))
		}
	case 'K':
		switch f.field(0, 0) {
		case 0:
			*out = append(*out, newEvent(KindClearLineForwards))
		case 1:
			*out = append(*out, newEvent(KindClearLineBackwards))
		case 2:
			*out = append(*out, newEvent(KindClearLine))
		default:
			*out = append(*out, newEvent(KindInvalid))
		}
	case 'L':
		*out = append(*out, TerminalOutput{Kind: KindInsertLines, N: f.motionDefault(0)})
	case 'P':
		*out = append(*out, TerminalOutput{Kind: KindDelete, N: f.motionDefault(0)})
	case 'X':
		*out = append(*out, TerminalOutput{Kind: KindErase, N: f.motionDefault(0)})
	case '@':
		*out = append(*out, TerminalOutput{Kind: KindInsertSpaces, N: f.motionDefault(0)})
	case 'm':
		for _, attr := range decodeSgrParams(rawSgrValues(f)) {
			*out = append(*out, TerminalOutput{Kind: KindSgr, Sgr: attr})
		}
	case 'h', 'l':
		set := c.final == 'h'
		for _, v := range f.vals {
			if v < 0 {
				continue
			}
			var mode ModeKind
			if f.private {
				mode = decodeDecPrivateMode(v)
			} else {
				mode = decodeAnsiMode(v)
			}
			*out = append(*out, TerminalOutput{Kind: KindMode, Mode: ModeChange{Mode: mode, Set: set, Code: v}})
		}
	case 'n':
		if f.field(0, 0) == 6 {
			*out = append(*out, newEvent(KindCursorReport))
		} else {
			*out = append(*out, newEvent(KindSkipped))
		}
	case 'r':
		top, bottom := OptInt{}, OptInt{}
		if v := f.field(0, -1); v >= 0 {
			top = SomeInt(v)
		}
		if v := f.field(1, -1); v >= 0 {
			bottom = SomeInt(v)
		}
		*out = append(*out, TerminalOutput{Kind: KindSetTopAndBottomMargins, Margins: Margins{Top: top, Bottom: bottom}})
	case 't':
		op := f.field(0, 0)
		var params []int
		if len(f.vals) > 1 {
			params = append([]int(nil), f.vals[1:]...)
		}
		*out = append(*out, TerminalOutput{Kind: KindWindowManipulation, Window: WindowManipulation{Op: op, Params: params}})
	case 'q':
		*out = append(*out, TerminalOutput{Kind: KindCursorVisualStyle, N: f.field(0, 0)})
	case 'p':
		if len(c.intermediates) > 0 && containsByte(c.intermediates, '$') {
			*out = append(*out, TerminalOutput{Kind: KindMode, Mode: ModeChange{Mode: ModeQuery, Code: f.field(0, 0)}})
		} else {
			*out = append(*out, newEvent(KindInvalid))
		}
	case 'c':
		*out = append(*out, newEvent(KindRequestDeviceAttributes))
	default:
		*out = append(*out, newEvent(KindInvalid))
	}
}

// rawSgrValues strips the leading '?' flag's absence of meaning for SGR
// (SGR never carries a private prefix) and passes through defaulted-to-0
// absent fields, since SGR's own default is 0 (Reset), not 1.
func rawSgrValues(f csiFields) []int {
	if len(f.vals) == 0 {
		return nil
	}
	out := make([]int, len(f.vals))
	for i, v := range f.vals {
		if v < 0 {
			v = 0
		}
		out[i] = v
	}
	return out
}

func containsByte(bs []byte, b byte) bool {
	for _, c := range bs {
		if c == b {
			return true
		}
	}
	return false
}
