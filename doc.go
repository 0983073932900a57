// Package termcore implements the core of a terminal emulator: an
// ANSI/ECMA-48 byte-stream parser, a flat-buffer screen model with
// scrollback, a format-range tracker, and the dispatcher tying them
// together. It renders nothing; a GUI or test harness drives it with raw
// PTY output and reads back a consistent snapshot.
//
// # Quick Start
//
//	term := termcore.New(termcore.WithSize(80, 24))
//	term.Write([]byte("\x1b[31mHello \x1b[32mWorld\x1b[0m!"))
//
//	snap := term.Snapshot()
//	for _, c := range snap.Visible {
//	    fmt.Print(c.String())
//	}
//
// # Architecture
//
// Bytes flow through four layers, leaf to root:
//
//   - [AnsiParser]: a Ground/Escape automaton with three composable
//     sub-parsers (Csi, Osc, Simple) that turns raw bytes into a stream of
//     [TerminalOutput] events.
//   - [ScreenBuffer]: a flat []TChar, not a 2-D grid. Rows are derived on
//     demand from line_ranges; wrapping is a byproduct of how those ranges
//     are computed, not a separate code path.
//   - [FormatTracker]: a sorted, non-overlapping set of [FormatTag] ranges
//     partitioning the buffer's index space, kept coherent across inserts
//     and deletes via push_range/push_range_adjustment/delete_range.
//   - [Terminal]: owns the primary and alternate [Buffer]s, mode state, and
//     the parser, and applies every event to the active buffer.
//
// # Terminal
//
// Terminal implements [io.Writer]:
//
//	term := termcore.New(
//	    termcore.WithSize(80, 24),
//	    termcore.WithScrollbackLimit(5000),
//	    termcore.WithResponseWriter(ptyInput),
//	)
//
//	cmd := exec.Command("ls", "-la", "--color")
//	cmd.Stdout = term
//	cmd.Run()
//
// # Primary and Alternate Screens
//
// Terminal owns two Buffers. Full-screen applications (vim, less, htop)
// switch to the alternate screen via CSI ?1049h and back via CSI ?1049l;
// leaving it always resets the alternate buffer to a fresh, empty one of
// the current size, so its content never leaks into the next entry.
//
// # Colors and Attributes
//
// Cell attributes live in [FormatAttrs], attached to buffer ranges by the
// [FormatTracker] rather than stored per-cell. Colors implement Go's
// [image/color.Color]; [IndexedColor] and [NamedColor] defer resolution
// until a host calls [FormatAttrs.ResolvedFg], [FormatAttrs.ResolvedBg], or
// [FormatAttrs.ResolvedUnderline].
//
// # Providers
//
// Providers handle events the core can't answer on its own. All are
// optional with no-op defaults:
//
//   - [BellProvider]: bell/beep (BEL)
//   - [TitleProvider]: window title changes and the title stack (OSC 0/2, XTWINOPS 22/23)
//   - [SemanticPromptHandler]: shell-integration marks (OSC 133)
//
// Cursor reports, device attributes, and color query replies are written
// directly to the [ResponseProvider] supplied via [WithResponseWriter].
//
// # Middleware
//
// Middleware wraps the single point where every parsed event is applied:
//
//	mw := &termcore.Middleware{
//	    Dispatch: func(ev termcore.TerminalOutput, next func(termcore.TerminalOutput)) {
//	        if ev.Kind == termcore.KindBell {
//	            log.Println("bell suppressed")
//	            return // don't call next: swallow the event
//	        }
//	        next(ev)
//	    },
//	}
//	term := termcore.New(termcore.WithMiddleware(mw))
//
// # Shell Integration
//
// OSC 133 marks are recorded as flat buffer indices rather than rows, so
// they stay valid across scrollback clipping:
//
//	term := termcore.New(termcore.WithSemanticPromptHandler(&myHandler{}))
//	output := term.GetLastCommandOutput()
//
// # Snapshots
//
// [Terminal.Snapshot] takes a single read lock and returns scrollback and
// visible TChars plus their format tags, split at the same boundary, along
// with cursor position/visibility and the window title — the complete
// renderer-accessor contract.
//
// # Thread Safety
//
// Terminal is safe for concurrent use: HandleIncomingData/Write hold an
// exclusive lock; Snapshot and the other read accessors hold a shared one.
// Per §5, the core itself is single-writer — concurrent Write calls
// serialize rather than interleave, but batching writes on one goroutine is
// still the intended usage.
package termcore
