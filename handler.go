package termcore

import "fmt"

// apply dispatches one parser event to the active buffer, mode state, or an
// outbound reply (§4.7 step 5, §6's event table). Called with t.mu already
// held by HandleIncomingData.
func (t *Terminal) apply(ev TerminalOutput) {
	switch ev.Kind {
	case KindData:
		if leftover := t.active.WriteData(ev.Data); len(leftover) > 0 {
			t.log.Debug("dropped mid-sequence partial UTF-8", "bytes", len(leftover))
		}

	case KindSetCursorPos:
		t.applySetCursorPos(ev)

	case KindSetCursorPosRel:
		t.applySetCursorPosRel(ev)

	case KindClearDisplayFromCursorToEnd:
		t.active.ClearDisplayFromCursorToEnd()

	case KindClearDisplayFromStartToCursor:
		t.active.ClearDisplayFromStartToCursor()

	case KindClearDisplay:
		t.active.ClearDisplay()

	case KindClearScrollbackAndDisplay:
		t.active.ClearScrollbackAndDisplay()

	case KindClearLineForwards:
		t.active.ClearLineForwards()

	case KindClearLineBackwards:
		t.active.ClearLineBackwards()

	case KindClearLine:
		t.active.ClearLine()

	case KindCarriageReturn:
		t.active.Cursor.Pos.X = 0

	case KindNewline:
		s := t.active.Screen
		if t.active.Cursor.Pos.Y+1 < s.Height() {
			t.active.Cursor.Pos.Y++
			break
		}
		// On the bottom row: grow the buffer by one line so the visible
		// window scrolls by one and the cursor stays on the last row.
		t.active.Cursor.Pos.Y = s.Height() - 1
		s.padVertical(t.active.Cursor.Pos.Y)
		for lines := len(s.LineRanges()); len(s.LineRanges()) == lines; {
			s.buf = append(s.buf, NewLineTChar())
		}

	case KindBackspace:
		if t.active.Cursor.Pos.X >= 1 {
			t.active.Cursor.Pos.X--
		}

	case KindBell:
		t.bell.Ring()

	case KindInsertLines:
		t.active.InsertLines(ev.N)

	case KindDelete:
		t.active.DeleteForwards(ev.N)

	case KindErase:
		t.active.EraseForwards(ev.N)

	case KindInsertSpaces:
		t.active.InsertSpaces(ev.N)

	case KindSgr:
		if ev.Sgr.Kind == SgrUnknown {
			t.log.Warn("unknown SGR parameter", "value", ev.Sgr.Unknown)
		}
		applySgr(&t.active.Cursor.Attrs, ev.Sgr)

	case KindMode:
		t.applyMode(ev.Mode)

	case KindCursorReport:
		t.writeResponse(fmt.Sprintf("\x1b[%d;%dR", t.active.Cursor.Pos.Y+1, t.active.Cursor.Pos.X+1))

	case KindRequestDeviceAttributes:
		t.writeResponse("\x1b[?1;2c")

	case KindRequestDeviceNameAndVersion:
		// Not part of §6's Host I/O byte table and unreachable from the
		// current parser (no terminator emits this Kind); nothing to reply.
		t.log.Debug("request device name and version: no reply defined")

	case KindOscResponse:
		t.applyOscResponse(ev.Osc)

	case KindCursorVisualStyle:
		t.active.Cursor.Style = cursorStyleFromN(ev.N)

	case KindSetTopAndBottomMargins:
		t.applyMargins(ev.Margins)

	case KindWindowManipulation:
		t.applyWindowManipulation(ev.Window)

	case KindApplicationKeypadMode:
		t.modes.CursorKey = CursorKeyApplication

	case KindNormalKeypadMode:
		t.modes.CursorKey = CursorKeyAnsi

	case KindDecSpecialGraphics:
		t.decSpecialGraphics = ev.GraphicsOn

	case KindFullReset:
		t.fullReset()

	case KindSkipped:
		t.log.Debug("skipped sequence")

	case KindInvalid:
		t.log.Debug("invalid sequence")
	}
}

func (t *Terminal) applySetCursorPos(ev TerminalOutput) {
	if ev.X.Set {
		x := ev.X.Val - 1
		if x < 0 {
			x = 0
		}
		t.active.Cursor.Pos.X = x
	}
	if ev.Y.Set {
		y := ev.Y.Val - 1
		if y < 0 {
			y = 0
		}
		t.active.Cursor.Pos.Y = y
	}
}

func (t *Terminal) applySetCursorPosRel(ev TerminalOutput) {
	if ev.X.Set {
		x := t.active.Cursor.Pos.X + ev.X.Val
		if x < 0 {
			x = 0
		}
		t.active.Cursor.Pos.X = x
	}
	if ev.Y.Set {
		y := t.active.Cursor.Pos.Y + ev.Y.Val
		if y < 0 {
			y = 0
		}
		t.active.Cursor.Pos.Y = y
	}
}

// applySgr merges one decoded SGR parameter into the cursor's pen (§4.3).
// 22 (NormalIntensity) clears both bold and faint per ECMA-48.
func applySgr(attrs *FormatAttrs, attr SgrAttr) {
	switch attr.Kind {
	case SgrReset:
		*attrs = defaultFormatAttrs()
	case SgrBold:
		attrs.Weight = WeightBold
	case SgrFaint:
		attrs.Weight = WeightFaint
	case SgrItalic:
		attrs.Decorations.set(DecorationItalic)
	case SgrUnderline:
		attrs.Decorations.set(DecorationUnderline)
	case SgrSlowBlink:
		attrs.Decorations.set(DecorationSlowBlink)
	case SgrFastBlink:
		attrs.Decorations.set(DecorationFastBlink)
	case SgrReverseVideo:
		attrs.Decorations.set(DecorationReverseVideo)
	case SgrConceal:
		attrs.Decorations.set(DecorationConceal)
	case SgrStrikethrough:
		attrs.Decorations.set(DecorationStrikethrough)
	case SgrResetBold:
		attrs.Weight = WeightNormal
	case SgrNormalIntensity:
		attrs.Weight = WeightNormal
	case SgrNotItalic:
		attrs.Decorations.clear(DecorationItalic)
	case SgrNotUnderlined:
		attrs.Decorations.clear(DecorationUnderline | DecorationDoubleUnderline | DecorationCurlyUnderline)
	case SgrResetReverseVideo:
		attrs.Decorations.clear(DecorationReverseVideo)
	case SgrRevealed:
		attrs.Decorations.clear(DecorationConceal)
	case SgrNotStrikethrough:
		attrs.Decorations.clear(DecorationStrikethrough)
	case SgrForeground:
		attrs.Fg = attr.Color
	case SgrBackground:
		attrs.Bg = attr.Color
	case SgrUnderlineColor:
		attrs.Underline = attr.Color
	case SgrUnknown:
		// Logged as a warning by apply; the pen is left unchanged since SGR
		// parameters never abort a sequence.
	}
}

// applyMode updates ModesState or buffer-scoped mode flags (§4.2's DEC
// private / ANSI `h`/`l` table).
func (t *Terminal) applyMode(mc ModeChange) {
	switch mc.Mode {
	case ModeCursorKeysApplication:
		if mc.Set {
			t.modes.CursorKey = CursorKeyApplication
		} else {
			t.modes.CursorKey = CursorKeyAnsi
		}
	case ModeColumnMode132:
		// DECCOLM: column-count switch is out of scope (no 80/132 column
		// reflow modeled); recognized but otherwise a no-op.
	case ModeOrigin:
		t.modes.Origin = TriState(mc.Set)
	case ModeAutoWrap:
		t.modes.AutoWrap = TriState(mc.Set)
	case ModeBlinkingCursor:
		t.modes.CursorBlink = TriState(mc.Set)
	case ModeShowCursor:
		t.modes.ShowCursor = TriState(mc.Set)
	case ModeReportMouseX10:
		t.setMouseTracking(mc.Set, MouseTrackingX10)
	case ModeReportMouseX11:
		t.setMouseTracking(mc.Set, MouseTrackingX11)
	case ModeReportMouseButtonEvent:
		t.setMouseTracking(mc.Set, MouseTrackingButtonEvent)
	case ModeReportMouseAnyEvent:
		t.setMouseTracking(mc.Set, MouseTrackingAnyEvent)
	case ModeReportFocusInOut:
		t.modes.FocusReporting = TriState(mc.Set)
	case ModeUTF8Mouse:
		// Encoding variant of mouse reporting; not modeled separately from
		// MouseTracking, so recognized and otherwise ignored.
	case ModeSGRMouse:
		t.modes.SGRMouse = TriState(mc.Set)
	case ModeAlternateScreen:
		t.setAlternateScreen(mc.Set)
	case ModeBracketedPaste:
		t.modes.BracketedPaste = TriState(mc.Set)
	case ModeInsert:
		t.modes.Insert = TriState(mc.Set)
	case ModeLineFeedNewLine:
		t.modes.LineFeedNewLine = TriState(mc.Set)
	case ModeQuery:
		// DECRQM: §6 defines no reply byte format, so recognized but not
		// answered.
		t.log.Debug("DECRQM query: no reply defined", "code", mc.Code)
	case ModeUnknown:
		t.log.Debug("unknown mode", "code", mc.Code, "set", mc.Set)
	}
}

func (t *Terminal) setMouseTracking(set bool, kind MouseTrackingMode) {
	if set {
		t.modes.MouseTracking = kind
		return
	}
	if t.modes.MouseTracking == kind {
		t.modes.MouseTracking = MouseTrackingNone
	}
}

// setAlternateScreen switches the active buffer (§4.7 "Alternate-screen
// toggle"). Entering preserves nothing extra beyond the primary buffer's own
// cursor; leaving replaces the alternate buffer with a fresh empty one of
// the current size so its content never leaks into a later entry.
func (t *Terminal) setAlternateScreen(enter bool) {
	if enter {
		if t.modes.ActiveScreen == ScreenAlternate {
			return
		}
		t.modes.ActiveScreen = ScreenAlternate
		t.active = t.alternate
		return
	}
	if t.modes.ActiveScreen != ScreenAlternate {
		return
	}
	t.modes.ActiveScreen = ScreenPrimary
	t.alternate = NewBuffer(t.width, t.height)
	t.active = t.primary
}

// applyMargins implements DECSTBM: substitute 1/height for absent fields,
// then validate top < bottom and neither is 0 before storing (§8 boundary
// behaviors). The margins are stored on the buffer but, per the reference's
// own behavior, never consulted by the scroll path (see DESIGN.md).
func (t *Terminal) applyMargins(m Margins) {
	height := t.active.Screen.Height()
	top := 1
	if m.Top.Set {
		top = m.Top.Val
	}
	bottom := height
	if m.Bottom.Set {
		bottom = m.Bottom.Val
	}
	if top == 0 || bottom == 0 || top >= bottom {
		t.log.Debug("rejected DECSTBM", "top", top, "bottom", bottom)
		return
	}
	t.active.scrollTop = top - 1
	t.active.scrollBottom = bottom - 1
}

func (t *Terminal) applyOscResponse(osc OscResponse) {
	switch osc.Kind {
	case OscSetTitleBar:
		t.title = osc.Title
		t.titleP.SetTitle(osc.Title)
	case OscURL:
		if osc.URL.End {
			t.active.Cursor.Attrs.URL = nil
		} else {
			t.active.Cursor.Attrs.URL = &Hyperlink{ID: osc.URL.ID, URL: osc.URL.URL}
		}
	case OscFtcs:
		t.recordShellIntegrationMark(osc.Ftcs)
	case OscRequestColorQueryForeground:
		t.replyColorQuery(osc.Color, 10, DefaultForeground)
	case OscRequestColorQueryBackground:
		t.replyColorQuery(osc.Color, 11, DefaultBackground)
	}
}

func (t *Terminal) replyColorQuery(q ColorQuery, code int, rgba interface{ RGBA() (uint32, uint32, uint32, uint32) }) {
	if !q.IsQuery {
		// A literal color-setting value or an unrecognized body: setting the
		// default colors isn't modeled, so nothing to do beyond logging.
		if q.Value != "" {
			t.log.Debug("ignored OSC color set", "code", code, "value", q.Value)
		}
		return
	}
	r, g, b, _ := rgba.RGBA()
	t.writeResponse(fmt.Sprintf("\x1b]%d;rgb:%02x/%02x/%02x\x1b\\", code, r>>8, g>>8, b>>8))
}

// applyWindowManipulation implements the subset of XTWINOPS (CSI t) that
// has a defined reply in §6's Host I/O byte table, plus the title stack
// (22/23, a supplemental feature beyond spec.md's base OSC table).
func (t *Terminal) applyWindowManipulation(w WindowManipulation) {
	switch w.Op {
	case 11:
		t.writeResponse("\x1b[1t")
	case 13:
		t.writeResponse("\x1b[3;0;0t")
	case 14:
		t.writeResponse(fmt.Sprintf("\x1b[4;%d;%dt", t.height, t.width))
	case 15:
		t.writeResponse(fmt.Sprintf("\x1b[5;%d;%dt", t.height, t.width))
	case 16:
		t.writeResponse(fmt.Sprintf("\x1b[6;%d;%dt", t.height, t.width))
	case 18:
		t.writeResponse(fmt.Sprintf("\x1b[8;%d;%dt", t.height, t.width))
	case 22:
		t.titleStack = append(t.titleStack, t.title)
		t.titleP.PushTitle()
	case 23:
		if n := len(t.titleStack); n > 0 {
			t.title = t.titleStack[n-1]
			t.titleStack = t.titleStack[:n-1]
			t.titleP.SetTitle(t.title)
		}
		t.titleP.PopTitle()
	default:
		t.log.Debug("unhandled window manipulation", "op", w.Op)
	}
}

// fullReset implements `ESC c` (RIS): clears the active screen, cursor, and
// modes to their power-on defaults (§8 "clears screen, cursor, modes to
// defaults").
func (t *Terminal) fullReset() {
	h := t.active.Screen.Height()
	t.active.Screen.ClearAll()
	t.active.Fmt = NewFormatTracker()
	t.active.Cursor = NewCursorState()
	t.active.Saved = nil
	t.active.scrollTop = 0
	t.active.scrollBottom = h - 1
	t.modes = NewModesState()
	t.decSpecialGraphics = false
}

func cursorStyleFromN(n int) CursorStyle {
	switch n {
	case 2:
		return CursorStyleSteadyBlock
	case 3:
		return CursorStyleBlinkingUnderline
	case 4:
		return CursorStyleSteadyUnderline
	case 5:
		return CursorStyleBlinkingBar
	case 6:
		return CursorStyleSteadyBar
	default:
		return CursorStyleBlinkingBlock
	}
}
