package termcore

import "testing"

func TestSemanticPromptMarkPromptStart(t *testing.T) {
	term := New(WithSize(80, 24))

	term.Write([]byte("\x1b]133;A\x07"))

	marks := term.PromptMarks()
	if len(marks) != 1 {
		t.Fatalf("expected 1 mark, got %d", len(marks))
	}
	if marks[0].Type != PromptStart {
		t.Errorf("expected PromptStart, got %v", marks[0].Type)
	}
	if marks[0].HasExitCode {
		t.Error("expected no exit code on a prompt-start mark")
	}
}

func TestSemanticPromptMarkCommandStart(t *testing.T) {
	term := New(WithSize(80, 24))

	term.Write([]byte("\x1b]133;B\x07"))

	marks := term.PromptMarks()
	if len(marks) != 1 || marks[0].Type != CommandStart {
		t.Fatalf("expected 1 CommandStart mark, got %+v", marks)
	}
}

func TestSemanticPromptMarkCommandFinishedWithExitCode(t *testing.T) {
	term := New(WithSize(80, 24))

	term.Write([]byte("\x1b]133;D;0\x07"))

	marks := term.PromptMarks()
	if len(marks) != 1 {
		t.Fatalf("expected 1 mark, got %d", len(marks))
	}
	if marks[0].Type != CommandFinished {
		t.Errorf("expected CommandFinished, got %v", marks[0].Type)
	}
	if !marks[0].HasExitCode || marks[0].ExitCode != 0 {
		t.Errorf("expected exit code 0, got %+v", marks[0])
	}
}

func TestSemanticPromptMarkCommandFinishedWithoutExitCode(t *testing.T) {
	term := New(WithSize(80, 24))

	term.Write([]byte("\x1b]133;D\x07"))

	marks := term.PromptMarks()
	if len(marks) != 1 || marks[0].HasExitCode {
		t.Fatalf("expected no exit code recorded, got %+v", marks)
	}
}

func TestSemanticPromptMarkUnrecognizedIsDropped(t *testing.T) {
	term := New(WithSize(80, 24))

	term.Write([]byte("\x1b]133;Z\x07"))

	if n := term.PromptMarkCount(); n != 0 {
		t.Errorf("expected 0 marks for an unrecognized subtype, got %d", n)
	}
}

func TestSemanticPromptMarkIndexTracksCursor(t *testing.T) {
	term := New(WithSize(80, 24))

	term.Write([]byte("\x1b]133;A\x07"))
	term.Write([]byte("prompt$ "))
	term.Write([]byte("\x1b]133;B\x07"))

	marks := term.PromptMarks()
	if len(marks) != 2 {
		t.Fatalf("expected 2 marks, got %d", len(marks))
	}
	if marks[1].Index <= marks[0].Index {
		t.Errorf("expected second mark's index to advance past the first: %+v", marks)
	}
}

func TestClearPromptMarks(t *testing.T) {
	term := New(WithSize(80, 24))

	term.Write([]byte("\x1b]133;A\x07"))
	term.ClearPromptMarks()

	if n := term.PromptMarkCount(); n != 0 {
		t.Errorf("expected 0 marks after clear, got %d", n)
	}
}

func TestNextPrevPromptMark(t *testing.T) {
	term := New(WithSize(80, 24))

	term.Write([]byte("\x1b]133;A\x07"))
	term.Write([]byte("x"))
	term.Write([]byte("\x1b]133;B\x07"))
	term.Write([]byte("y"))
	term.Write([]byte("\x1b]133;C\x07"))

	marks := term.PromptMarks()

	if next := term.NextPromptMark(-1, PromptMarkType(-1)); next != marks[0].Index {
		t.Errorf("expected first mark index %d, got %d", marks[0].Index, next)
	}
	if prev := term.PrevPromptMark(marks[2].Index, PromptMarkType(-1)); prev != marks[1].Index {
		t.Errorf("expected second mark index %d, got %d", marks[1].Index, prev)
	}
	if next := term.NextPromptMark(marks[2].Index, PromptMarkType(-1)); next != -1 {
		t.Errorf("expected -1 past the last mark, got %d", next)
	}
}

func TestGetPromptMarkAt(t *testing.T) {
	term := New(WithSize(80, 24))

	term.Write([]byte("\x1b]133;A\x07"))
	marks := term.PromptMarks()

	got := term.GetPromptMarkAt(marks[0].Index)
	if got == nil || got.Type != PromptStart {
		t.Errorf("expected to find the prompt-start mark, got %+v", got)
	}

	if got := term.GetPromptMarkAt(marks[0].Index + 1000); got != nil {
		t.Errorf("expected nil for an unrecorded index, got %+v", got)
	}
}

type recordingPromptHandler struct {
	marks []PromptMark
}

func (r *recordingPromptHandler) OnMark(mark PromptMark) {
	r.marks = append(r.marks, mark)
}

func TestSemanticPromptHandlerNotified(t *testing.T) {
	h := &recordingPromptHandler{}
	term := New(WithSize(80, 24), WithSemanticPromptHandler(h))

	term.Write([]byte("\x1b]133;A\x07"))

	if len(h.marks) != 1 {
		t.Fatalf("expected handler to observe 1 mark, got %d", len(h.marks))
	}
	if h.marks[0].Type != PromptStart {
		t.Errorf("expected PromptStart, got %v", h.marks[0].Type)
	}
}

func TestSetSemanticPromptHandler(t *testing.T) {
	term := New(WithSize(80, 24))
	h := &recordingPromptHandler{}

	term.SetSemanticPromptHandler(h)
	term.Write([]byte("\x1b]133;B\x07"))

	if len(h.marks) != 1 {
		t.Fatalf("expected handler installed after construction to observe marks, got %d", len(h.marks))
	}
}

func TestGetLastCommandOutput(t *testing.T) {
	term := New(WithSize(80, 24))

	term.Write([]byte("\x1b]133;A\x07"))
	term.Write([]byte("prompt$ cmd\r\n"))
	term.Write([]byte("\x1b]133;C\x07"))
	term.Write([]byte("output line 1\r\noutput line 2\r\n"))
	term.Write([]byte("\x1b]133;D;0\x07"))

	got := term.GetLastCommandOutput()
	if got != "output line 1\noutput line 2" {
		t.Errorf("expected %q, got %q", "output line 1\noutput line 2", got)
	}
}

func TestGetLastCommandOutputNoCompletePair(t *testing.T) {
	term := New(WithSize(80, 24))

	term.Write([]byte("\x1b]133;A\x07"))

	if got := term.GetLastCommandOutput(); got != "" {
		t.Errorf("expected empty output with no executed/finished pair, got %q", got)
	}
}
