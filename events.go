package termcore

// OutputKind discriminates the TerminalOutput variants the parser emits
// (§6 "Parser event stream").
type OutputKind int

const (
	KindData OutputKind = iota
	KindSetCursorPos
	KindSetCursorPosRel
	KindClearDisplayFromCursorToEnd
	KindClearDisplayFromStartToCursor
	KindClearDisplay
	KindClearScrollbackAndDisplay
	KindClearLineForwards
	KindClearLineBackwards
	KindClearLine
	KindCarriageReturn
	KindNewline
	KindBackspace
	KindBell
	KindInsertLines
	KindDelete
	KindErase
	KindInsertSpaces
	KindSgr
	KindMode
	KindCursorReport
	KindRequestDeviceAttributes
	KindRequestDeviceNameAndVersion
	KindOscResponse
	KindCursorVisualStyle
	KindSetTopAndBottomMargins
	KindWindowManipulation
	KindApplicationKeypadMode
	KindNormalKeypadMode
	KindDecSpecialGraphics
	KindSkipped
	KindInvalid
	KindFullReset
)

// OptInt is a present-or-absent signed integer, used for the wire-optional
// fields of SetCursorPos/SetCursorPosRel (§6: "{x?, y?}").
type OptInt struct {
	Val int
	Set bool
}

func SomeInt(v int) OptInt { return OptInt{Val: v, Set: true} }

// TerminalOutput is one event in the stream AnsiParser produces and
// TerminalState consumes (§4.1, §6). Only the fields relevant to Kind are
// populated; the rest are zero.
type TerminalOutput struct {
	Kind OutputKind

	Data []byte // KindData

	X, Y       OptInt // KindSetCursorPos (1-based from wire, absolute) / KindSetCursorPosRel (signed delta)
	N          int    // KindInsertLines, KindDelete, KindErase, KindInsertSpaces, KindCursorVisualStyle
	Sgr        SgrAttr
	Mode       ModeChange
	Margins    Margins
	Window     WindowManipulation
	Osc        OscResponse
	GraphicsOn bool // KindDecSpecialGraphics: true = Replace, false = DontReplace
}

// Margins is the payload of DECSTBM (§4.2 'r'). Top/Bottom are absent when
// the wire omitted them; the dispatcher substitutes 1/height before
// validating (§9 Open Question territory — see DESIGN.md).
type Margins struct {
	Top    OptInt
	Bottom OptInt
}

// WindowManipulation is the payload of CSI t (§4.2).
type WindowManipulation struct {
	Op     int
	Params []int
}

// OscKind discriminates the OscResponse payload variants (§4.4).
type OscKind int

const (
	OscSetTitleBar OscKind = iota
	OscURL
	OscFtcs
	OscRequestColorQueryForeground
	OscRequestColorQueryBackground
)

// ColorQuery discriminates a color-query OSC (10/11): either a `?` query, a
// literal color-setting string, or something neither (§4.4 "A color Query
// is detected when the second token equals the literal ?").
type ColorQuery struct {
	IsQuery bool
	Value   string
	Unknown bool
}

// OscResponse is the payload of KindOscResponse (§4.4, §6).
type OscResponse struct {
	Kind  OscKind
	Title string     // OscSetTitleBar
	URL   URLPayload // OscURL
	Ftcs  string     // OscFtcs
	Color ColorQuery // OscRequestColorQueryForeground/Background
}

// URLPayload is OSC 8's hyperlink payload: either a new link (ID optional)
// or the end-of-link marker.
type URLPayload struct {
	End bool
	ID  string
	URL string
}

func newEvent(k OutputKind) TerminalOutput { return TerminalOutput{Kind: k} }
