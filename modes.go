package termcore

// CursorKeyMode selects the byte sequence family arrow/Home/End/Page keys
// translate to (DECCKM, §3/§6).
type CursorKeyMode int

const (
	CursorKeyAnsi CursorKeyMode = iota
	CursorKeyApplication
)

// TriState is an on/off mode flag; named rather than bool so call sites
// read as the DEC mode name rather than a bare boolean (§3 ModesState).
type TriState bool

const (
	Off TriState = false
	On  TriState = true
)

// MouseTrackingMode selects which mouse events get reported and how (§3).
type MouseTrackingMode int

const (
	MouseTrackingNone MouseTrackingMode = iota
	MouseTrackingX10
	MouseTrackingX11
	MouseTrackingButtonEvent
	MouseTrackingAnyEvent
	MouseTrackingSGR
)

// ActiveScreen selects which Buffer is live (§3).
type ActiveScreen int

const (
	ScreenPrimary ActiveScreen = iota
	ScreenAlternate
)

// ModesState holds every terminal mode flag spec.md §3 enumerates.
type ModesState struct {
	CursorKey       CursorKeyMode
	AutoWrap        TriState
	ShowCursor      TriState
	BracketedPaste  TriState
	CursorBlink     TriState
	FocusReporting  TriState
	MouseTracking   MouseTrackingMode
	ActiveScreen    ActiveScreen
	SGRMouse        TriState
	Insert          TriState
	Origin          TriState
	LineFeedNewLine TriState
}

// NewModesState returns VT220-compatible power-on defaults: auto-wrap and
// cursor visible on, everything else off, primary screen active.
func NewModesState() ModesState {
	return ModesState{
		CursorKey:     CursorKeyAnsi,
		AutoWrap:      On,
		ShowCursor:    On,
		MouseTracking: MouseTrackingNone,
		ActiveScreen:  ScreenPrimary,
	}
}
