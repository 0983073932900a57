package termcore

import (
	"io"
	"log/slog"
	"sync"
)

const (
	// DefaultWidth is the terminal width used when WithSize is not given.
	DefaultWidth = 80
	// DefaultHeight is the terminal height used when WithSize is not given.
	DefaultHeight = 24
	// DefaultScrollbackLimit is clip_lines' fixed bound when WithScrollbackLimit
	// is not given (§4.5 "1000 by the reference, configurable").
	DefaultScrollbackLimit = 1000
)

// Terminal is the dispatcher owning both screens, mode state, and the
// parser feeding it (§4.7 "TerminalState"). All mutation happens through
// HandleIncomingData on a single goroutine; external readers use the
// accessor methods in snapshot.go, which take the read lock (§5).
type Terminal struct {
	mu sync.RWMutex

	width  int
	height int

	primary   *Buffer
	alternate *Buffer
	active    *Buffer

	modes ModesState

	title      string
	titleStack []string

	scrollbackLimit int

	decSpecialGraphics bool
	leftover           []byte
	parser             *AnsiParser

	response ResponseProvider
	bell     BellProvider
	titleP   TitleProvider
	mw       *Middleware
	log      *slog.Logger

	promptMarks           []PromptMark
	semanticPromptHandler SemanticPromptHandler

	changed bool
}

// Option configures a Terminal during construction.
type Option func(*Terminal)

// WithSize sets the terminal dimensions. Values <= 0 fall back to the
// defaults (80x24).
func WithSize(width, height int) Option {
	return func(t *Terminal) {
		if width > 0 {
			t.width = width
		}
		if height > 0 {
			t.height = height
		}
	}
}

// WithScrollbackLimit sets the clip_lines bound (§4.5). n <= 0 means "no
// limit beyond the default".
func WithScrollbackLimit(n int) Option {
	return func(t *Terminal) {
		if n > 0 {
			t.scrollbackLimit = n
		}
	}
}

// WithResponseWriter sets the outbound reply channel (§6 "Host I/O bytes").
func WithResponseWriter(w io.Writer) Option {
	return func(t *Terminal) {
		t.response = w
	}
}

// WithBellProvider sets the bell handler. Defaults to a no-op.
func WithBellProvider(p BellProvider) Option {
	return func(t *Terminal) {
		t.bell = p
	}
}

// WithTitleProvider sets the title-change handler. Defaults to a no-op.
func WithTitleProvider(p TitleProvider) Option {
	return func(t *Terminal) {
		t.titleP = p
	}
}

// WithMiddleware installs interception hooks around event dispatch.
func WithMiddleware(m *Middleware) Option {
	return func(t *Terminal) {
		t.mw = m
	}
}

// WithLogger sets the logger used for Invalid/Skipped diagnostics (§7).
// Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(t *Terminal) {
		if l != nil {
			t.log = l
		}
	}
}

// WithSemanticPromptHandler installs a handler notified of OSC 133
// shell-integration marks as they're parsed. Defaults to a no-op.
func WithSemanticPromptHandler(h SemanticPromptHandler) Option {
	return func(t *Terminal) {
		t.semanticPromptHandler = h
	}
}

// New creates a Terminal with the given options, defaulting to 80x24 with
// auto-wrap and cursor visible, primary screen active.
func New(opts ...Option) *Terminal {
	t := &Terminal{
		width:                 DefaultWidth,
		height:                DefaultHeight,
		scrollbackLimit:       DefaultScrollbackLimit,
		modes:                 NewModesState(),
		bell:                  NoopBell{},
		titleP:                NoopTitle{},
		response:              NoopResponse{},
		semanticPromptHandler: NoopSemanticPromptHandler{},
		log:                   slog.Default(),
	}

	for _, opt := range opts {
		opt(t)
	}

	t.primary = NewBuffer(t.width, t.height)
	t.alternate = NewBuffer(t.width, t.height)
	t.active = t.primary
	t.parser = NewAnsiParser()

	return t
}

// Width returns the terminal's column count.
func (t *Terminal) Width() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.width
}

// Height returns the terminal's row count.
func (t *Terminal) Height() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.height
}

// Title returns the current window title.
func (t *Terminal) Title() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.title
}

// Changed reports whether state has mutated since the last ClearChanged
// call (§4.7 step 7 "signal changed to the renderer").
func (t *Terminal) Changed() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.changed
}

// ClearChanged resets the changed flag.
func (t *Terminal) ClearChanged() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.changed = false
}

// Write implements io.Writer by feeding raw bytes to HandleIncomingData.
func (t *Terminal) Write(data []byte) (int, error) {
	t.HandleIncomingData(data)
	return len(data), nil
}

// HandleIncomingData implements §4.7's 7-step algorithm: reassemble
// partial UTF-8 across calls, optionally translate DEC Special Graphics,
// parse into events, apply each event's mutation, clip scrollback, and
// mark the state changed. It never returns an error: parser/dispatch
// failures are logged and surfaced as Invalid events instead (§7).
func (t *Terminal) HandleIncomingData(data []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()

	buf := data
	if len(t.leftover) > 0 {
		buf = append(append([]byte(nil), t.leftover...), data...)
		t.leftover = nil
	}

	valid, partial := splitTrailingPartialUTF8(buf)
	t.leftover = partial

	if t.decSpecialGraphics {
		valid = translateDecSpecialGraphics(valid)
	}

	var events []TerminalOutput
	t.parser.PushBytes(valid, &events)
	t.parser.Flush(&events)

	for _, ev := range events {
		if t.mw != nil && t.mw.Dispatch != nil {
			t.mw.Dispatch(ev, t.apply)
		} else {
			t.apply(ev)
		}
	}

	if dropped := t.active.ClipLines(t.scrollbackLimit); dropped != nil {
		t.log.Debug("clipped scrollback lines", "count", dropped.End-dropped.Start)
		// Keep prompt marks on the same TChars: shift those past the
		// dropped range and discard those that were inside it.
		kept := t.promptMarks[:0]
		for _, m := range t.promptMarks {
			if m.Index < dropped.End {
				continue
			}
			m.Index -= dropped.End - dropped.Start
			kept = append(kept, m)
		}
		t.promptMarks = kept
	}

	t.changed = true
}

// translateDecSpecialGraphics rewrites bytes 0x5F-0x7E through the DEC
// Special Graphics table, leaving everything else untouched (§4.7 step 3).
func translateDecSpecialGraphics(b []byte) []byte {
	out := make([]byte, 0, len(b))
	for _, c := range b {
		if r, ok := decSpecialGraphicsReplace(c); ok {
			out = append(out, []byte(string(r))...)
			continue
		}
		out = append(out, c)
	}
	return out
}

func (t *Terminal) writeResponse(s string) {
	if t.response != nil {
		t.response.Write([]byte(s))
	}
}
