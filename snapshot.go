package termcore

// Snapshot is a consistent point-in-time capture of the active buffer,
// taken under a single read lock so every field reflects the same state
// (§5 "a state snapshot taken between batches is internally consistent").
// It implements §6's renderer-accessor contract: scrollback/visible TChars,
// their format tags split at the same boundary, cursor position/visibility,
// and the window title.
type Snapshot struct {
	Width, Height int

	Scrollback []TChar
	Visible    []TChar

	ScrollbackTags []FormatTag
	VisibleTags    []FormatTag

	CursorPos   CursorPos
	CursorStyle CursorStyle
	ShowCursor  bool
	WindowTitle string
}

// Snapshot captures the renderer-facing view of the active buffer.
func (t *Terminal) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	boundary := scrollbackBoundary(t.active.Screen)
	total := t.active.Screen.Len()

	scrollbackTags, visibleTags := splitFormatTags(t.active.Fmt.Tags(), boundary)

	return Snapshot{
		Width:          t.width,
		Height:         t.height,
		Scrollback:     t.active.Screen.Slice(0, boundary),
		Visible:        t.active.Screen.Slice(boundary, total),
		ScrollbackTags: scrollbackTags,
		VisibleTags:    visibleTags,
		CursorPos:      t.active.Cursor.Pos,
		CursorStyle:    t.active.Cursor.Style,
		ShowCursor:     bool(t.modes.ShowCursor),
		WindowTitle:    t.title,
	}
}

// CursorPos returns the active cursor's visible (x, y) position.
func (t *Terminal) CursorPos() CursorPos {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active.Cursor.Pos
}

// ShowCursor reports whether DECTCEM currently wants the cursor drawn.
func (t *Terminal) ShowCursor() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return bool(t.modes.ShowCursor)
}

// IsMouseHoveredOnURL reports the hyperlink (if any) attached to the cell
// under pos (§6 "is_mouse_hovered_on_url(cursor) → url?").
func (t *Terminal) IsMouseHoveredOnURL(pos CursorPos) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	idx, ok := t.active.Screen.CursorToBufPos(pos)
	if !ok {
		return "", false
	}
	attrs := t.active.Fmt.AttrsAt(idx)
	if attrs.URL == nil {
		return "", false
	}
	return attrs.URL.URL, true
}

// scrollbackBoundary returns the buffer index where scrollback ends and the
// visible window begins.
func scrollbackBoundary(s *ScreenBuffer) int {
	scrollback := s.ScrollbackLineRanges()
	if len(scrollback) == 0 {
		return 0
	}
	return scrollback[len(scrollback)-1].End
}

// splitFormatTags partitions tags at boundary into two tag sets, each
// re-indexed relative to its own slice (§6 "split at the scrollback/visible
// boundary"). A tag straddling the boundary is split in two, same as
// FormatTracker's own range-splitting rules (§4.6).
func splitFormatTags(tags []FormatTag, boundary int) (before, after []FormatTag) {
	for _, tag := range tags {
		switch {
		case tag.End <= boundary:
			before = append(before, tag)
		case tag.Start >= boundary:
			after = append(after, rebaseFormatTag(tag, boundary))
		default:
			before = append(before, FormatTag{Range: Range{Start: tag.Start, End: boundary}, Attrs: tag.Attrs})
			after = append(after, rebaseFormatTag(FormatTag{Range: Range{Start: boundary, End: tag.End}, Attrs: tag.Attrs}, boundary))
		}
	}
	return before, after
}

// rebaseFormatTag shifts a tag's range by -boundary, leaving the unbounded
// end sentinel untouched.
func rebaseFormatTag(tag FormatTag, boundary int) FormatTag {
	end := tag.End
	if end != unboundedEnd {
		end -= boundary
	}
	return FormatTag{Range: Range{Start: tag.Start - boundary, End: end}, Attrs: tag.Attrs}
}
