package termcore

import (
	"bytes"
	"testing"
)

func lineText(chars []TChar) string {
	var s string
	for _, c := range chars {
		if c.IsNewLine() {
			s += "\n"
			continue
		}
		s += c.String()
	}
	return s
}

func TestNewTerminalDefaults(t *testing.T) {
	term := New()

	if term.Width() != DefaultWidth {
		t.Errorf("expected width %d, got %d", DefaultWidth, term.Width())
	}
	if term.Height() != DefaultHeight {
		t.Errorf("expected height %d, got %d", DefaultHeight, term.Height())
	}
}

func TestTerminalWithSize(t *testing.T) {
	term := New(WithSize(120, 40))

	if term.Width() != 120 {
		t.Errorf("expected width 120, got %d", term.Width())
	}
	if term.Height() != 40 {
		t.Errorf("expected height 40, got %d", term.Height())
	}
}

func TestTerminalWrite(t *testing.T) {
	term := New(WithSize(80, 24))

	term.Write([]byte("Hello"))

	snap := term.Snapshot()
	if got := lineText(snap.Visible); got != "Hello\n" {
		t.Errorf("expected %q, got %q", "Hello\n", got)
	}
}

func TestTerminalCursorPosition(t *testing.T) {
	term := New(WithSize(80, 24))

	term.Write([]byte("ABC"))

	pos := term.CursorPos()
	if pos != (CursorPos{X: 3, Y: 0}) {
		t.Errorf("expected cursor at (3,0), got %+v", pos)
	}
}

func TestTerminalCarriageReturnAndNewline(t *testing.T) {
	term := New(WithSize(80, 24))

	term.Write([]byte("Line1\r\nLine2"))

	snap := term.Snapshot()
	if got := lineText(snap.Visible); got != "Line1\nLine2\n" {
		t.Errorf("expected %q, got %q", "Line1\nLine2\n", got)
	}
}

func TestTerminalBackspace(t *testing.T) {
	term := New(WithSize(80, 24))

	term.Write([]byte("AB\x08"))

	pos := term.CursorPos()
	if pos != (CursorPos{X: 1, Y: 0}) {
		t.Errorf("expected cursor at (1,0) after backspace, got %+v", pos)
	}
}

func TestTerminalBackspaceAtColumnZeroIsNoop(t *testing.T) {
	term := New(WithSize(80, 24))

	term.Write([]byte("\x08"))

	if pos := term.CursorPos(); pos != (CursorPos{}) {
		t.Errorf("expected cursor to stay at origin, got %+v", pos)
	}
}

func TestTerminalSetCursorPos(t *testing.T) {
	term := New(WithSize(80, 24))

	term.Write([]byte("\x1b[5;10H"))

	pos := term.CursorPos()
	if pos != (CursorPos{X: 9, Y: 4}) {
		t.Errorf("expected cursor at (9,4), got %+v", pos)
	}
}

func TestTerminalSetCursorPosClampsLowerBoundOnly(t *testing.T) {
	term := New(WithSize(10, 10))

	term.Write([]byte("\x1b[0;0H"))

	if pos := term.CursorPos(); pos != (CursorPos{}) {
		t.Errorf("expected cursor floored at origin, got %+v", pos)
	}
}

func TestTerminalSGRColor(t *testing.T) {
	term := New(WithSize(80, 24))

	term.Write([]byte("\x1b[31mred"))

	snap := term.Snapshot()
	if len(snap.VisibleTags) == 0 {
		t.Fatal("expected at least one format tag")
	}
	if snap.VisibleTags[0].Attrs.Fg == nil {
		t.Error("expected a foreground color to be set")
	}
}

func TestTerminalSGRReset(t *testing.T) {
	term := New(WithSize(80, 24))

	term.Write([]byte("\x1b[1mbold\x1b[0mnormal"))

	snap := term.Snapshot()
	var found bool
	for _, tag := range snap.VisibleTags {
		if tag.Attrs.Weight == WeightNormal {
			found = true
		}
	}
	if !found {
		t.Error("expected a normal-weight tag after reset")
	}
}

func TestTerminalClearDisplay(t *testing.T) {
	term := New(WithSize(80, 24))

	term.Write([]byte("Hello\x1b[2J"))

	snap := term.Snapshot()
	if got := lineText(snap.Visible); got != "     \n" {
		t.Errorf("expected all spaces, got %q", got)
	}
}

func TestTerminalBell(t *testing.T) {
	var rang bool
	term := New(WithBellProvider(bellFunc(func() { rang = true })))

	term.Write([]byte("\x07"))

	if !rang {
		t.Error("expected bell provider to be invoked")
	}
}

type bellFunc func()

func (f bellFunc) Ring() { f() }

func TestTerminalResponseWriter(t *testing.T) {
	var buf bytes.Buffer
	term := New(WithResponseWriter(&buf))

	term.Write([]byte("\x1b[6n"))

	if buf.Len() == 0 {
		t.Fatal("expected a cursor position report")
	}
	if got := buf.String(); got != "\x1b[1;1R" {
		t.Errorf("expected %q, got %q", "\x1b[1;1R", got)
	}
}

func TestTerminalDeviceAttributes(t *testing.T) {
	var buf bytes.Buffer
	term := New(WithResponseWriter(&buf))

	term.Write([]byte("\x1b[c"))

	if got := buf.String(); got != "\x1b[?1;2c" {
		t.Errorf("expected %q, got %q", "\x1b[?1;2c", got)
	}
}

func TestTerminalAlternateScreenSwitch(t *testing.T) {
	term := New(WithSize(80, 24))

	term.Write([]byte("primary"))
	term.Write([]byte("\x1b[?1049h"))
	term.Write([]byte("alternate"))

	snap := term.Snapshot()
	if got := lineText(snap.Visible); got != "alternate\n" {
		t.Errorf("expected alternate screen content, got %q", got)
	}

	term.Write([]byte("\x1b[?1049l"))
	snap = term.Snapshot()
	if got := lineText(snap.Visible); got != "primary\n" {
		t.Errorf("expected primary screen content restored, got %q", got)
	}
}

func TestTerminalAlternateScreenResetsOnReentry(t *testing.T) {
	term := New(WithSize(80, 24))

	term.Write([]byte("\x1b[?1049h"))
	term.Write([]byte("first"))
	term.Write([]byte("\x1b[?1049l"))
	term.Write([]byte("\x1b[?1049h"))

	snap := term.Snapshot()
	if got := lineText(snap.Visible); got != "" {
		t.Errorf("expected fresh alternate screen, got %q", got)
	}
}

func TestTerminalMiddlewareCanSwallowEvents(t *testing.T) {
	mw := &Middleware{
		Dispatch: func(ev TerminalOutput, next func(TerminalOutput)) {
			if ev.Kind == KindBell {
				return
			}
			next(ev)
		},
	}
	var rang bool
	term := New(WithBellProvider(bellFunc(func() { rang = true })), WithMiddleware(mw))

	term.Write([]byte("\x07"))

	if rang {
		t.Error("expected middleware to swallow the bell event")
	}
}

func TestTerminalScrollbackLimit(t *testing.T) {
	term := New(WithSize(10, 2), WithScrollbackLimit(3))

	for i := 0; i < 10; i++ {
		term.Write([]byte("line\r\n"))
	}

	snap := term.Snapshot()
	all := append(append([]TChar{}, snap.Scrollback...), snap.Visible...)
	lines := 0
	for _, c := range all {
		if c.IsNewLine() {
			lines++
		}
	}
	if len(all) > 0 && !all[len(all)-1].IsNewLine() {
		lines++ // trailing partial line
	}
	if lines > 3 {
		t.Errorf("expected clip_lines to bound total lines at 3, got %d", lines)
	}

	if len(snap.Visible) == 0 {
		t.Error("expected a visible window to remain after clipping")
	}
}

func TestTerminalChangedFlag(t *testing.T) {
	term := New()

	if term.Changed() {
		t.Error("expected Changed to be false initially")
	}

	term.Write([]byte("x"))
	if !term.Changed() {
		t.Error("expected Changed to be true after a write")
	}

	term.ClearChanged()
	if term.Changed() {
		t.Error("expected Changed to be false after ClearChanged")
	}
}
