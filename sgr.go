package termcore

import "image/color"

// SgrKind discriminates one decoded SGR parameter (§4.3). A CSI `m` sequence
// carries one TerminalOutput per parameter group, each with SgrKind set.
type SgrKind int

const (
	SgrReset SgrKind = iota
	SgrBold
	SgrFaint
	SgrItalic
	SgrUnderline
	SgrSlowBlink
	SgrFastBlink
	SgrReverseVideo
	SgrConceal
	SgrStrikethrough
	SgrResetBold
	SgrNormalIntensity
	SgrNotItalic
	SgrNotUnderlined
	SgrResetReverseVideo
	SgrRevealed
	SgrNotStrikethrough
	SgrForeground
	SgrBackground
	SgrUnderlineColor
	SgrUnknown
)

// SgrAttr is the payload of a KindSgr TerminalOutput: one decoded
// Select-Graphic-Rendition parameter (§4.3).
type SgrAttr struct {
	Kind    SgrKind
	Color   color.Color // SgrForeground, SgrBackground, SgrUnderlineColor
	Unknown int         // SgrUnknown
}

// decodeSgrParams turns one CSI `m` parameter list (already split on `;` or
// `:` per §4.2's subparameter rule) into a sequence of SgrAttr, left to
// right, consuming extra values for 38/48/58 as it goes (§4.3).
func decodeSgrParams(params []int) []SgrAttr {
	if len(params) == 0 {
		return []SgrAttr{{Kind: SgrReset}}
	}
	var out []SgrAttr
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			out = append(out, SgrAttr{Kind: SgrReset})
		case p == 1:
			out = append(out, SgrAttr{Kind: SgrBold})
		case p == 2:
			out = append(out, SgrAttr{Kind: SgrFaint})
		case p == 3:
			out = append(out, SgrAttr{Kind: SgrItalic})
		case p == 4:
			out = append(out, SgrAttr{Kind: SgrUnderline})
		case p == 5:
			out = append(out, SgrAttr{Kind: SgrSlowBlink})
		case p == 6:
			out = append(out, SgrAttr{Kind: SgrFastBlink})
		case p == 7:
			out = append(out, SgrAttr{Kind: SgrReverseVideo})
		case p == 8:
			out = append(out, SgrAttr{Kind: SgrConceal})
		case p == 9:
			out = append(out, SgrAttr{Kind: SgrStrikethrough})
		case p == 21:
			out = append(out, SgrAttr{Kind: SgrResetBold})
		case p == 22:
			out = append(out, SgrAttr{Kind: SgrNormalIntensity})
		case p == 23:
			out = append(out, SgrAttr{Kind: SgrNotItalic})
		case p == 24:
			out = append(out, SgrAttr{Kind: SgrNotUnderlined})
		case p == 27:
			out = append(out, SgrAttr{Kind: SgrResetReverseVideo})
		case p == 28:
			out = append(out, SgrAttr{Kind: SgrRevealed})
		case p == 29:
			out = append(out, SgrAttr{Kind: SgrNotStrikethrough})
		case p >= 30 && p <= 37:
			out = append(out, SgrAttr{Kind: SgrForeground, Color: DefaultPalette[p-30]})
		case p == 39:
			out = append(out, SgrAttr{Kind: SgrForeground, Color: NamedColor{Foreground: true}})
		case p >= 40 && p <= 47:
			out = append(out, SgrAttr{Kind: SgrBackground, Color: DefaultPalette[p-40]})
		case p == 49:
			out = append(out, SgrAttr{Kind: SgrBackground, Color: NamedColor{Foreground: false}})
		case p >= 90 && p <= 97:
			out = append(out, SgrAttr{Kind: SgrForeground, Color: DefaultPalette[8+p-90]})
		case p >= 100 && p <= 107:
			out = append(out, SgrAttr{Kind: SgrBackground, Color: DefaultPalette[8+p-100]})
		case p == 38 || p == 48 || p == 58:
			var kind SgrKind
			switch p {
			case 38:
				kind = SgrForeground
			case 48:
				kind = SgrBackground
			default:
				kind = SgrUnderlineColor
			}
			// Underline color has no default slot of its own; it resets to
			// the foreground default, same as 38, matching how terminals
			// without a separate underline-color concept render it.
			c, consumed := decodeExtendedColor(params[i+1:], p == 48)
			i += consumed
			out = append(out, SgrAttr{Kind: kind, Color: c})
		default:
			out = append(out, SgrAttr{Kind: SgrUnknown, Unknown: p})
		}
	}
	return out
}

// decodeExtendedColor parses the value(s) following a 38/48/58 introducer
// and returns the resulting color plus how many extra params it consumed.
// An introducer with nothing following resets to default (§4.3, and the
// Open Question in §9 resolved in favor of reset — see DESIGN.md). bg
// selects which default slot that reset targets: true for 48 (background),
// false for 38/58 (foreground, the latter for lack of its own default).
func decodeExtendedColor(rest []int, bg bool) (color.Color, int) {
	def := NamedColor{Foreground: !bg}
	if len(rest) == 0 {
		return def, 0
	}
	switch rest[0] {
	case 5:
		if len(rest) < 2 {
			return def, 1
		}
		idx := clampByte(rest[1])
		return IndexedColor{Index: idx}, 2
	case 2:
		idx := 1
		vals := rest[1:]
		// A colon-separated color-space id before R/G/B is skipped when
		// more than 3 values remain (§4.3).
		if len(vals) > 3 {
			idx++
			vals = vals[1:]
		}
		if len(vals) < 3 {
			return def, len(rest)
		}
		r := clampByte(vals[0])
		g := clampByte(vals[1])
		b := clampByte(vals[2])
		return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}, idx + 3
	default:
		return def, 0
	}
}

func clampByte(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// ModeKind discriminates a recognized terminal mode (§4.2 DEC private /
// ANSI `h`/`l`; §6 Mode(variant)).
type ModeKind int

const (
	ModeCursorKeysApplication ModeKind = iota
	ModeColumnMode132
	ModeOrigin
	ModeAutoWrap
	ModeBlinkingCursor
	ModeShowCursor
	ModeReportMouseX10
	ModeReportMouseX11
	ModeReportMouseButtonEvent
	ModeReportMouseAnyEvent
	ModeReportFocusInOut
	ModeUTF8Mouse
	ModeSGRMouse
	ModeAlternateScreen
	ModeBracketedPaste
	ModeInsert
	ModeLineFeedNewLine
	ModeQuery
	ModeUnknown
)

// ModeChange is the payload of a KindMode TerminalOutput: a mode, whether it
// was set (true) or reset (false), and the raw numeric code for Unknown/
// Query (§4.2).
type ModeChange struct {
	Mode ModeKind
	Set  bool
	Code int
}

// decodeDecPrivateMode maps a `?`-prefixed mode number to a ModeKind
// (§4.2's DEC private set/reset table).
func decodeDecPrivateMode(code int) ModeKind {
	switch code {
	case 1:
		return ModeCursorKeysApplication
	case 3:
		return ModeColumnMode132
	case 6:
		return ModeOrigin
	case 7:
		return ModeAutoWrap
	case 12:
		return ModeBlinkingCursor
	case 25:
		return ModeShowCursor
	case 9:
		return ModeReportMouseX10
	case 1000:
		return ModeReportMouseX11
	case 1002:
		return ModeReportMouseButtonEvent
	case 1003:
		return ModeReportMouseAnyEvent
	case 1004:
		return ModeReportFocusInOut
	case 1005:
		return ModeUTF8Mouse
	case 1006:
		return ModeSGRMouse
	case 47, 1047, 1049:
		return ModeAlternateScreen
	case 2004:
		return ModeBracketedPaste
	default:
		return ModeUnknown
	}
}

// decodeAnsiMode maps a non-`?` mode number to a ModeKind (§4.2 "ANSI
// set/reset").
func decodeAnsiMode(code int) ModeKind {
	switch code {
	case 4:
		return ModeInsert
	case 20:
		return ModeLineFeedNewLine
	default:
		return ModeUnknown
	}
}
