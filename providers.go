package termcore

import "io"

// ResponseProvider writes terminal responses (cursor reports, device
// attributes, color query replies, window reports) back to the
// host (§4.7 "the state owns only the sender half of the outbound
// channel"). Typically an io.Writer connected to the PTY input.
type ResponseProvider = io.Writer

// NoopResponse discards all response data (useful in tests, or when the
// host side isn't wired up yet).
type NoopResponse struct{}

func (NoopResponse) Write(p []byte) (n int, err error) {
	return len(p), nil
}

// BellProvider handles bell/beep events triggered by BEL (0x07).
type BellProvider interface {
	Ring()
}

// NoopBell ignores all bell events.
type NoopBell struct{}

func (NoopBell) Ring() {}

// TitleProvider handles window title changes (OSC 0/2) and the title stack
// (XTWINOPS 22/23, a supplemental feature beyond spec.md's base OSC table).
type TitleProvider interface {
	SetTitle(title string)
	PushTitle()
	PopTitle()
}

// NoopTitle ignores all title operations.
type NoopTitle struct{}

func (NoopTitle) SetTitle(title string) {}
func (NoopTitle) PushTitle()            {}
func (NoopTitle) PopTitle()             {}

var (
	_ ResponseProvider = NoopResponse{}
	_ BellProvider     = (*NoopBell)(nil)
	_ TitleProvider    = (*NoopTitle)(nil)
)
