package termcore

import (
	"image/color"
	"testing"
)

func TestDecodeSgrParamsEmptyIsReset(t *testing.T) {
	attrs := decodeSgrParams(nil)
	if len(attrs) != 1 || attrs[0].Kind != SgrReset {
		t.Fatalf("expected a single SgrReset, got %+v", attrs)
	}
}

func TestDecodeSgrParamsNamedForeground(t *testing.T) {
	attrs := decodeSgrParams([]int{31})
	if len(attrs) != 1 {
		t.Fatalf("expected 1 attr, got %d", len(attrs))
	}
	if attrs[0].Kind != SgrForeground || attrs[0].Color != DefaultPalette[1] {
		t.Errorf("expected red foreground, got %+v", attrs[0])
	}
}

func TestDecodeSgrParamsIndexedColor(t *testing.T) {
	attrs := decodeSgrParams([]int{38, 5, 200})
	if len(attrs) != 1 {
		t.Fatalf("expected 1 attr, got %d", len(attrs))
	}
	if attrs[0].Kind != SgrForeground {
		t.Fatalf("expected foreground kind, got %v", attrs[0].Kind)
	}
	if attrs[0].Color != (IndexedColor{Index: 200}) {
		t.Errorf("expected indexed color 200, got %+v", attrs[0].Color)
	}
}

func TestDecodeSgrParamsRGBColor(t *testing.T) {
	attrs := decodeSgrParams([]int{48, 2, 10, 20, 30})
	if len(attrs) != 1 {
		t.Fatalf("expected 1 attr, got %d", len(attrs))
	}
	if attrs[0].Kind != SgrBackground {
		t.Fatalf("expected background kind, got %v", attrs[0].Kind)
	}
	want := color.RGBA{R: 10, G: 20, B: 30, A: 255}
	if attrs[0].Color != want {
		t.Errorf("expected RGBA %+v, got %+v", want, attrs[0].Color)
	}
}

// TestDecodeSgrParamsExtendedColorResetSlots covers the reviewer-flagged
// bug: a bare 38/48/58 introducer with nothing following it must reset to
// its OWN default slot, not unconditionally to the foreground default.
func TestDecodeSgrParamsExtendedColorResetSlots(t *testing.T) {
	cases := []struct {
		name string
		code int
		kind SgrKind
		want NamedColor
	}{
		{"foreground", 38, SgrForeground, NamedColor{Foreground: true}},
		{"background", 48, SgrBackground, NamedColor{Foreground: false}},
		{"underline", 58, SgrUnderlineColor, NamedColor{Foreground: true}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			attrs := decodeSgrParams([]int{c.code})
			if len(attrs) != 1 {
				t.Fatalf("expected 1 attr, got %d", len(attrs))
			}
			if attrs[0].Kind != c.kind {
				t.Errorf("expected kind %v, got %v", c.kind, attrs[0].Kind)
			}
			if attrs[0].Color != c.want {
				t.Errorf("expected reset color %+v, got %+v", c.want, attrs[0].Color)
			}
		})
	}
}

func TestDecodeSgrParamsMultipleInOneSequence(t *testing.T) {
	attrs := decodeSgrParams([]int{1, 31, 4})
	if len(attrs) != 3 {
		t.Fatalf("expected 3 attrs, got %d: %+v", len(attrs), attrs)
	}
	if attrs[0].Kind != SgrBold || attrs[1].Kind != SgrForeground || attrs[2].Kind != SgrUnderline {
		t.Errorf("unexpected kinds: %+v", attrs)
	}
}

// TestTerminalSgrColorThenResetThenText covers S6: ESC[31mAB ESC[0m CD
// produces two format tags over the four printable cells, [0,2) red
// foreground and [2,4) default, both at normal weight.
func TestTerminalSgrColorThenResetThenText(t *testing.T) {
	term := New(WithSize(80, 24))
	term.Write([]byte("\x1b[31mAB\x1b[0mCD"))

	snap := term.Snapshot()
	if got := lineText(snap.Visible); got != "ABCD\n" {
		t.Fatalf("expected visible %q, got %q", "ABCD\n", got)
	}

	first := snap.VisibleTags[0]
	if first.Start != 0 || first.End != 2 {
		t.Fatalf("expected first tag [0,2), got %+v", first.Range)
	}
	if first.Attrs.ResolvedFg() != DefaultPalette[1] {
		t.Errorf("expected red foreground over AB, got %+v", first.Attrs.ResolvedFg())
	}
	if first.Attrs.Weight != WeightNormal {
		t.Errorf("expected normal weight over AB, got %v", first.Attrs.Weight)
	}

	var second FormatTag
	found := false
	for _, tag := range snap.VisibleTags {
		if tag.Start == 2 {
			second = tag
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a tag starting at 2, got %+v", snap.VisibleTags)
	}
	if second.End != 4 {
		t.Errorf("expected second tag to end at 4, got %+v", second.Range)
	}
	if second.Attrs.ResolvedFg() != DefaultForeground {
		t.Errorf("expected default foreground over CD, got %+v", second.Attrs.ResolvedFg())
	}
	if second.Attrs.Weight != WeightNormal {
		t.Errorf("expected normal weight over CD, got %v", second.Attrs.Weight)
	}
}
