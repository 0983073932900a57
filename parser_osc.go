package termcore

import "strings"

// oscState is OscParser's internal automaton state (§4.4).
type oscState int

const (
	oscAccumulating oscState = iota
	oscSawEsc
	oscInvalid
	oscInvalidSawEsc
	oscFinished
	oscInvalidFinished
)

// OscParser accumulates bytes following `ESC ]` until BEL or `ESC \` (ST)
// terminates the sequence (§4.4). A fresh instance is created on each
// `ESC ]` entry and discarded on completion (§9).
type OscParser struct {
	state oscState
	buf   []byte
}

// NewOscParser returns a parser ready to accept the byte after `ESC ]`.
func NewOscParser() *OscParser {
	return &OscParser{state: oscAccumulating}
}

// Push feeds one byte.
func (o *OscParser) Push(b byte) {
	switch o.state {
	case oscAccumulating:
		switch {
		case b == 0x07:
			o.state = oscFinished
		case b == 0x1B:
			o.state = oscSawEsc
		case b >= 0x20 && b <= 0x7E, b >= 0x80:
			o.buf = append(o.buf, b)
		default:
			o.state = oscInvalid
		}
	case oscSawEsc:
		if b == '\\' {
			o.state = oscFinished
		} else {
			// A bare ESC not forming ST is malformed; drain to the next
			// real terminator instead of guessing what was meant.
			o.state = oscInvalid
		}
	case oscInvalid:
		if b == 0x07 {
			o.state = oscInvalidFinished
		} else if b == 0x1B {
			// Let a subsequent '\\' complete the invalid sequence too;
			// re-use oscSawEsc's transition but land on InvalidFinished.
			o.state = oscInvalidSawEsc
		}
	case oscInvalidSawEsc:
		if b == '\\' {
			o.state = oscInvalidFinished
		} else {
			o.state = oscInvalid
		}
	}
}

// Done reports whether the sequence is complete (validly or not).
func (o *OscParser) Done() bool {
	return o.state == oscFinished || o.state == oscInvalidFinished
}

func (o *OscParser) dispatch(out *[]TerminalOutput) {
	if o.state == oscInvalidFinished {
		*out = append(*out, newEvent(KindInvalid))
		return
	}

	tokens := strings.Split(string(o.buf), ";")
	if len(tokens) == 0 || tokens[0] == "" {
		*out = append(*out, newEvent(KindInvalid))
		return
	}

	switch tokens[0] {
	case "0", "2":
		title := strings.Join(tokens[1:], ";")
		*out = append(*out, TerminalOutput{Kind: KindOscResponse, Osc: OscResponse{Kind: OscSetTitleBar, Title: title}})
	case "1", "7":
		*out = append(*out, newEvent(KindSkipped))
	case "8":
		*out = append(*out, TerminalOutput{Kind: KindOscResponse, Osc: OscResponse{Kind: OscURL, URL: decodeHyperlinkTokens(tokens)}})
	case "10":
		*out = append(*out, TerminalOutput{Kind: KindOscResponse, Osc: OscResponse{Kind: OscRequestColorQueryForeground, Color: decodeColorQuery(tokens)}})
	case "11":
		*out = append(*out, TerminalOutput{Kind: KindOscResponse, Osc: OscResponse{Kind: OscRequestColorQueryBackground, Color: decodeColorQuery(tokens)}})
	case "133":
		*out = append(*out, TerminalOutput{Kind: KindOscResponse, Osc: OscResponse{Kind: OscFtcs, Ftcs: strings.Join(tokens[1:], ";")}})
	default:
		*out = append(*out, newEvent(KindInvalid))
	}
}

// decodeHyperlinkTokens parses OSC 8's "8;params;url" body. "8;;" (both
// empty) marks the end of the current link (§4.4).
func decodeHyperlinkTokens(tokens []string) URLPayload {
	params, url := "", ""
	if len(tokens) > 1 {
		params = tokens[1]
	}
	if len(tokens) > 2 {
		url = strings.Join(tokens[2:], ";")
	}
	if params == "" && url == "" {
		return URLPayload{End: true}
	}
	id := ""
	for _, kv := range strings.Split(params, ":") {
		if strings.HasPrefix(kv, "id=") {
			id = strings.TrimPrefix(kv, "id=")
		}
	}
	return URLPayload{ID: id, URL: url}
}

// decodeColorQuery detects a `?` query vs. a literal color-setting value
// (§4.4 "A color Query is detected when the second token equals ?").
func decodeColorQuery(tokens []string) ColorQuery {
	if len(tokens) < 2 {
		return ColorQuery{Unknown: true}
	}
	if tokens[1] == "?" {
		return ColorQuery{IsQuery: true}
	}
	return ColorQuery{Value: tokens[1]}
}
