package termcore

import (
	"image/color"
	"testing"
)

func TestFormatTrackerNewCoversWholeBuffer(t *testing.T) {
	f := NewFormatTracker()

	tags := f.Tags()
	if len(tags) != 1 {
		t.Fatalf("expected 1 tag, got %d", len(tags))
	}
	if tags[0].Start != 0 || tags[0].End != unboundedEnd {
		t.Errorf("expected [0, unbounded), got %+v", tags[0].Range)
	}
}

func TestFormatTrackerPushRangeSplits(t *testing.T) {
	f := NewFormatTracker()
	bold := FormatAttrs{Weight: WeightBold}

	f.PushRange(bold, Range{Start: 5, End: 10})

	tags := f.Tags()
	if len(tags) != 3 {
		t.Fatalf("expected 3 tags after splitting, got %d: %+v", len(tags), tags)
	}
	if tags[0].Start != 0 || tags[0].End != 5 {
		t.Errorf("expected leading tag [0,5), got %+v", tags[0].Range)
	}
	if tags[1].Start != 5 || tags[1].End != 10 || tags[1].Attrs.Weight != WeightBold {
		t.Errorf("expected bold tag [5,10), got %+v", tags[1])
	}
	if tags[2].Start != 10 || tags[2].End != unboundedEnd {
		t.Errorf("expected trailing tag [10,unbounded), got %+v", tags[2].Range)
	}
}

func TestFormatTrackerAttrsAt(t *testing.T) {
	f := NewFormatTracker()
	f.PushRange(FormatAttrs{Weight: WeightBold}, Range{Start: 2, End: 4})

	if got := f.AttrsAt(0).Weight; got != WeightNormal {
		t.Errorf("expected Normal before the tag, got %v", got)
	}
	if got := f.AttrsAt(2).Weight; got != WeightBold {
		t.Errorf("expected Bold at 2, got %v", got)
	}
	if got := f.AttrsAt(3).Weight; got != WeightBold {
		t.Errorf("expected Bold at 3, got %v", got)
	}
	if got := f.AttrsAt(4).Weight; got != WeightNormal {
		t.Errorf("expected Normal at 4 (exclusive end), got %v", got)
	}
}

// TestFormatTrackerPushThenDeleteRoundTrips covers the §8 round-trip
// property: push_range followed by delete_range over the same range returns
// the tracker to a state equal to before, on indices outside the range.
func TestFormatTrackerPushThenDeleteRoundTrips(t *testing.T) {
	f := NewFormatTracker()
	f.PushRange(FormatAttrs{Weight: WeightBold}, Range{Start: 10, End: 20})

	before := make([]FormatAttrs, 60)
	for i := range before {
		before[i] = f.AttrsAt(i)
	}

	f.PushRange(FormatAttrs{Weight: WeightFaint}, Range{Start: 30, End: 35})
	if got := f.AttrsAt(32).Weight; got != WeightFaint {
		t.Fatalf("expected Faint inside the pushed range, got %v", got)
	}
	f.DeleteRange(Range{Start: 30, End: 35})

	for i := range before {
		if got := f.AttrsAt(i); got != before[i] {
			t.Errorf("attrs at %d changed across round-trip: before %+v, after %+v", i, before[i], got)
		}
	}
}

func TestFormatTrackerPushRangeAdjustmentShiftsFollowingTags(t *testing.T) {
	f := NewFormatTracker()
	f.PushRange(FormatAttrs{Weight: WeightBold}, Range{Start: 5, End: 10})

	f.PushRangeAdjustment(Range{Start: 5, End: 8})

	tags := f.Tags()
	if tags[0].Start != 0 || tags[0].End != 5 {
		t.Errorf("expected unshifted leading tag [0,5), got %+v", tags[0].Range)
	}
	if tags[1].Start != 8 || tags[1].End != 13 {
		t.Errorf("expected bold tag shifted to [8,13), got %+v", tags[1].Range)
	}
}

func TestFormatTrackerDeleteRangeShiftsFollowingTags(t *testing.T) {
	f := NewFormatTracker()
	f.PushRange(FormatAttrs{Weight: WeightBold}, Range{Start: 20, End: 25})

	f.DeleteRange(Range{Start: 5, End: 10})

	tags := f.Tags()
	var bold FormatTag
	found := false
	for _, tag := range tags {
		if tag.Attrs.Weight == WeightBold {
			bold = tag
			found = true
		}
	}
	if !found {
		t.Fatal("expected a bold tag to survive the delete")
	}
	if bold.Start != 15 || bold.End != 20 {
		t.Errorf("expected bold tag shifted left to [15,20), got %+v", bold.Range)
	}
}

func TestFormatAttrsResolvedDefaults(t *testing.T) {
	var a FormatAttrs

	if got := a.ResolvedFg(); got != DefaultForeground {
		t.Errorf("expected default foreground, got %+v", got)
	}
	if got := a.ResolvedBg(); got != DefaultBackground {
		t.Errorf("expected default background, got %+v", got)
	}
	if got := a.ResolvedUnderline(); got != DefaultForeground {
		t.Errorf("expected underline to fall back to foreground default, got %+v", got)
	}
}

func TestFormatAttrsResolvedExplicitColors(t *testing.T) {
	a := FormatAttrs{
		Fg: color.RGBA{R: 10, G: 20, B: 30, A: 255},
		Bg: IndexedColor{Index: 1},
	}

	if got := a.ResolvedFg(); got != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("expected explicit RGBA foreground, got %+v", got)
	}
	if got := a.ResolvedBg(); got != DefaultPalette[1] {
		t.Errorf("expected indexed background to resolve through the palette, got %+v", got)
	}
}
