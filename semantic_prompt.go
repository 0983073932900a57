package termcore

import "strings"

// PromptMarkType discriminates an OSC 133 shell-integration mark (a
// supplemental feature beyond spec.md's base OSC table; see SPEC_FULL.md).
type PromptMarkType int

const (
	PromptStart PromptMarkType = iota
	CommandStart
	CommandExecuted
	CommandFinished
)

// PromptMark records one shell-integration mark at the flat buffer index it
// occurred at. Unlike a row-based model, this index is stable across
// scrollback/visible boundary shifts, and HandleIncomingData shifts it when
// scrollback clipping drops lines before it. Cells inserted or deleted
// before the mark by other edits are not tracked.
type PromptMark struct {
	Type        PromptMarkType
	Index       int
	ExitCode    int
	HasExitCode bool // only meaningful for CommandFinished
}

// SemanticPromptHandler receives shell-integration marks as they're parsed.
type SemanticPromptHandler interface {
	OnMark(mark PromptMark)
}

// NoopSemanticPromptHandler ignores all marks.
type NoopSemanticPromptHandler struct{}

func (NoopSemanticPromptHandler) OnMark(PromptMark) {}

var _ SemanticPromptHandler = NoopSemanticPromptHandler{}

// recordShellIntegrationMark parses an OSC 133 body ("A", "B", "C", "D" or
// "D;<exit code>") and records it at the buffer index the cursor currently
// resolves to. Unrecognized subtypes are logged and dropped.
func (t *Terminal) recordShellIntegrationMark(value string) {
	tokens := strings.Split(value, ";")
	if len(tokens) == 0 {
		return
	}

	mark := PromptMark{Index: t.bufferIndexAtCursor()}
	switch tokens[0] {
	case "A":
		mark.Type = PromptStart
	case "B":
		mark.Type = CommandStart
	case "C":
		mark.Type = CommandExecuted
	case "D":
		mark.Type = CommandFinished
		if len(tokens) > 1 {
			if code, ok := parseExitCode(tokens[1]); ok {
				mark.ExitCode = code
				mark.HasExitCode = true
			}
		}
	default:
		t.log.Debug("unrecognized shell integration mark", "value", value)
		return
	}

	t.promptMarks = append(t.promptMarks, mark)
	if t.semanticPromptHandler != nil {
		t.semanticPromptHandler.OnMark(mark)
	}
}

func parseExitCode(s string) (int, bool) {
	n := 0
	if s == "" {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// bufferIndexAtCursor resolves the active cursor's visible (x, y) to a flat
// buffer index, falling back to the buffer's end if the position doesn't
// (yet) name an existing visible line.
func (t *Terminal) bufferIndexAtCursor() int {
	idx, ok := t.active.Screen.CursorToBufPos(t.active.Cursor.Pos)
	if !ok {
		return t.active.Screen.Len()
	}
	return idx
}

// PromptMarks returns a copy of every recorded mark, oldest first.
func (t *Terminal) PromptMarks() []PromptMark {
	t.mu.RLock()
	defer t.mu.RUnlock()
	marks := make([]PromptMark, len(t.promptMarks))
	copy(marks, t.promptMarks)
	return marks
}

// PromptMarkCount returns the number of recorded marks.
func (t *Terminal) PromptMarkCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.promptMarks)
}

// ClearPromptMarks discards all recorded marks.
func (t *Terminal) ClearPromptMarks() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.promptMarks = nil
}

// NextPromptMark returns the index of the first mark after afterIndex whose
// type matches, or -1 if none exists. Pass matchType = -1 to match any type.
func (t *Terminal) NextPromptMark(afterIndex int, matchType PromptMarkType) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, mark := range t.promptMarks {
		if mark.Index > afterIndex && (int(matchType) == -1 || mark.Type == matchType) {
			return mark.Index
		}
	}
	return -1
}

// PrevPromptMark returns the index of the last mark before beforeIndex whose
// type matches, or -1 if none exists. Pass matchType = -1 to match any type.
func (t *Terminal) PrevPromptMark(beforeIndex int, matchType PromptMarkType) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for i := len(t.promptMarks) - 1; i >= 0; i-- {
		mark := t.promptMarks[i]
		if mark.Index < beforeIndex && (int(matchType) == -1 || mark.Type == matchType) {
			return mark.Index
		}
	}
	return -1
}

// GetPromptMarkAt returns the mark recorded at exactly index, or nil.
func (t *Terminal) GetPromptMarkAt(index int) *PromptMark {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for i := range t.promptMarks {
		if t.promptMarks[i].Index == index {
			mark := t.promptMarks[i]
			return &mark
		}
	}
	return nil
}

// SetSemanticPromptHandler installs h to receive future marks.
func (t *Terminal) SetSemanticPromptHandler(h SemanticPromptHandler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.semanticPromptHandler = h
}

// SemanticPromptHandlerValue returns the currently installed handler.
func (t *Terminal) SemanticPromptHandlerValue() SemanticPromptHandler {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.semanticPromptHandler
}

// GetLastCommandOutput returns the text between the most recent matched
// CommandExecuted/CommandFinished mark pair, or "" if no complete pair is
// recorded.
func (t *Terminal) GetLastCommandOutput() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var executed, finished *PromptMark
	for i := len(t.promptMarks) - 1; i >= 0; i-- {
		mark := &t.promptMarks[i]
		if finished == nil && mark.Type == CommandFinished {
			finished = mark
		}
		if executed == nil && mark.Type == CommandExecuted {
			executed = mark
		}
		if executed != nil && finished != nil {
			if executed.Index < finished.Index {
				break
			}
			executed = nil
		}
	}
	if executed == nil || finished == nil {
		return ""
	}
	return t.extractTextBetween(executed.Index, finished.Index)
}

// extractTextBetween renders buffer indices [start, end) as text, splitting
// on NewLine TChars and trimming trailing empty lines.
func (t *Terminal) extractTextBetween(start, end int) string {
	total := t.active.Screen.Len()
	if start < 0 {
		start = 0
	}
	if end > total {
		end = total
	}
	if start >= end {
		return ""
	}

	chars := t.active.Screen.Slice(start, end)
	var lines []string
	var cur strings.Builder
	for _, c := range chars {
		if c.IsNewLine() {
			lines = append(lines, cur.String())
			cur.Reset()
			continue
		}
		cur.WriteString(c.String())
	}
	lines = append(lines, cur.String())

	last := -1
	for i, l := range lines {
		if strings.TrimRight(l, " ") != "" {
			last = i
		}
	}
	if last < 0 {
		return ""
	}
	return strings.Join(lines[:last+1], "\n")
}
