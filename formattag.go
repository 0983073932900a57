package termcore

import (
	"image/color"
	"math"
)

// unboundedEnd is the sentinel FormatTag.End value meaning "through the end
// of the buffer, whatever that turns out to be" (§4.6's "unbounded end
// sentinel" — never shifted or clamped by range adjustments).
const unboundedEnd = math.MaxInt

// Range is a half-open buffer-index interval [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns End-Start. Callers must not call this on an unbounded range.
func (r Range) Len() int { return r.End - r.Start }

func (r Range) isEmpty() bool { return r.Start >= r.End }

func (r Range) overlaps(o Range) bool {
	return r.Start < o.End && o.Start < r.End
}

// FormatAttrs is the graphic-rendition state attached to a FormatTag or
// carried by a CursorState "pen" (§3 FormatTag / CursorState).
type FormatAttrs struct {
	Fg          color.Color
	Bg          color.Color
	Underline   color.Color
	Weight      Weight
	Decorations Decorations
	URL         *Hyperlink
}

// Hyperlink associates a format range with a clickable OSC 8 link.
type Hyperlink struct {
	ID  string
	URL string
}

// defaultFormatAttrs is the attribute set for freshly-initialized or reset
// cells: no colors, normal weight, no decorations, no link.
func defaultFormatAttrs() FormatAttrs {
	return FormatAttrs{}
}

// ResolvedFg returns a's foreground as concrete RGBA, applying the default
// foreground when Fg is nil or an out-of-range index (§6 accessor contract:
// a host renderer needs real color, not the tagged IndexedColor/NamedColor
// variants carried internally).
func (a FormatAttrs) ResolvedFg() color.RGBA { return resolveColor(a.Fg, true) }

// ResolvedBg is ResolvedFg for the background slot.
func (a FormatAttrs) ResolvedBg() color.RGBA { return resolveColor(a.Bg, false) }

// ResolvedUnderline is ResolvedFg for the underline-color slot; underline
// has no default color of its own, so an unset Underline resolves to the
// foreground default, same as the SGR 58-with-no-args reset (sgr.go).
func (a FormatAttrs) ResolvedUnderline() color.RGBA { return resolveColor(a.Underline, true) }

// FormatTag is a half-open range carrying the attributes in effect over it
// (§3, §4.6).
type FormatTag struct {
	Range
	Attrs FormatAttrs
}

// FormatTracker maintains a sorted, non-overlapping set of FormatTags that
// partitions [0, unbounded) exactly once (§4.6).
type FormatTracker struct {
	tags []FormatTag
}

// NewFormatTracker returns a tracker with a single default-attributed tag
// covering the whole buffer.
func NewFormatTracker() *FormatTracker {
	return &FormatTracker{tags: []FormatTag{{Range: Range{Start: 0, End: unboundedEnd}, Attrs: defaultFormatAttrs()}}}
}

// Tags returns a read-only snapshot of the current tags, sorted by Start.
func (f *FormatTracker) Tags() []FormatTag {
	out := make([]FormatTag, len(f.tags))
	copy(out, f.tags)
	return out
}

// remnants splits every tag overlapping r into the pieces of itself that
// survive outside r (the part before r.Start and the part after r.End),
// dropping whatever falls inside r. This single pass implements every case
// of §4.6's push_range/delete_range tag-splitting rules: full containment
// either direction and partial overlap from either side all fall out of
// "keep what's left, keep what's right".
func (f *FormatTracker) remnants(r Range) []FormatTag {
	out := make([]FormatTag, 0, len(f.tags)+1)
	for _, t := range f.tags {
		if !t.overlaps(r) {
			out = append(out, t)
			continue
		}
		if t.Start < r.Start {
			out = append(out, FormatTag{Range: Range{Start: t.Start, End: r.Start}, Attrs: t.Attrs})
		}
		if t.End > r.End {
			out = append(out, FormatTag{Range: Range{Start: r.End, End: t.End}, Attrs: t.Attrs})
		}
	}
	return out
}

// PushRange applies cursor's current attributes to r, splitting/trimming
// any tags that overlapped r (§4.6 push_range).
func (f *FormatTracker) PushRange(attrs FormatAttrs, r Range) {
	if r.isEmpty() {
		return
	}
	out := f.remnants(r)
	out = append(out, FormatTag{Range: r, Attrs: attrs})
	sortTagsByStart(out)
	f.tags = out
}

// PushRangeAdjustment shifts tags to account for newly inserted cells over
// r, so existing attributes stay attached to the same logical content and
// the new cells inherit whatever tag they landed inside (§4.6
// push_range_adjustment). r.Len() is the number of cells inserted at r.Start.
func (f *FormatTracker) PushRangeAdjustment(r Range) {
	n := r.Len()
	if n <= 0 {
		return
	}
	for i := range f.tags {
		t := &f.tags[i]
		switch {
		case t.Start >= r.Start:
			t.Start += n
			if t.End != unboundedEnd {
				t.End += n
			}
		case t.End != unboundedEnd && t.End > r.Start:
			// Straddles r.Start: only the end moves.
			t.End += n
		}
	}
}

// DeleteRange removes r from the buffer's index space: tags overlapping r
// are trimmed the same way as PushRange, and every tag entirely past r is
// shifted left by r.Len() (§4.6 delete_range).
func (f *FormatTracker) DeleteRange(r Range) {
	n := r.Len()
	if n <= 0 {
		return
	}
	out := f.remnants(r)
	for i := range out {
		t := &out[i]
		if t.Start >= r.End {
			t.Start -= n
			if t.End != unboundedEnd {
				t.End -= n
			}
		}
	}
	sortTagsByStart(out)
	f.tags = out
}

func sortTagsByStart(tags []FormatTag) {
	// Small N in practice (one per distinct style run); insertion sort
	// keeps this allocation-free and avoids pulling in sort for a handful
	// of elements.
	for i := 1; i < len(tags); i++ {
		for j := i; j > 0 && tags[j].Start < tags[j-1].Start; j-- {
			tags[j], tags[j-1] = tags[j-1], tags[j]
		}
	}
}

// AttrsAt returns the attributes in effect at buffer index i.
func (f *FormatTracker) AttrsAt(i int) FormatAttrs {
	for _, t := range f.tags {
		if i >= t.Start && i < t.End {
			return t.Attrs
		}
	}
	return defaultFormatAttrs()
}
