package termcore

// Buffer owns one screen's worth of state: its flat TChar sequence, the
// format tags layered over it, and the cursor/saved-cursor pair that track
// position and pen through it (§9 "Buffer -> {Screen, Fmt, Cursor}").
type Buffer struct {
	Screen *ScreenBuffer
	Fmt    *FormatTracker
	Cursor CursorState
	Saved  *SavedCursor

	scrollTop    int
	scrollBottom int
}

// NewBuffer creates an empty buffer of the given size with default cursor
// and format state.
func NewBuffer(width, height int) *Buffer {
	return &Buffer{
		Screen:       NewScreenBuffer(width, height),
		Fmt:          NewFormatTracker(),
		Cursor:       NewCursorState(),
		scrollTop:    0,
		scrollBottom: height - 1,
	}
}

// applyInsert keeps Fmt coherent with a ScreenBuffer mutation that inserted
// cells, then moves the cursor to the reported position (§4.6
// push_range_adjustment, applied immediately after insert_data/
// insert_spaces/insert_lines per spec).
func (b *Buffer) applyInsert(outcome InsertOutcome) {
	if !outcome.Inserted.isEmpty() {
		b.Fmt.PushRangeAdjustment(outcome.Inserted)
	}
	if !outcome.Written.isEmpty() {
		b.Fmt.PushRange(b.Cursor.Attrs, outcome.Written)
	}
	b.Cursor.Pos = outcome.NewPos
}

// WriteData inserts data at the cursor and advances it (CSI-free printable
// text, §4.5 insert_data / §4.7 step 5 "Data" dispatch).
func (b *Buffer) WriteData(data []byte) (leftover []byte) {
	outcome, left := b.Screen.InsertData(b.Cursor.Pos, data)
	b.applyInsert(outcome)
	return left
}

// InsertSpaces implements ICH at the cursor.
func (b *Buffer) InsertSpaces(n int) {
	outcome := b.Screen.InsertSpaces(b.Cursor.Pos, n)
	if !outcome.Inserted.isEmpty() {
		b.Fmt.PushRangeAdjustment(outcome.Inserted)
	}
	b.Fmt.PushRange(b.Cursor.Attrs, outcome.Written)
}

// InsertLines implements IL at the cursor's row. ScreenBuffer.InsertLines
// evicts from the bottom of the visible window before splicing in the new
// lines, so Fmt must be walked through the same order: DeleteRange for the
// eviction, then PushRangeAdjustment for the insertion.
func (b *Buffer) InsertLines(n int) {
	inserted, dropped := b.Screen.InsertLines(b.Cursor.Pos, n)
	if dropped != nil {
		b.Fmt.DeleteRange(*dropped)
	}
	if !inserted.isEmpty() {
		b.Fmt.PushRangeAdjustment(inserted)
	}
}

// DeleteForwards implements DCH at the cursor.
func (b *Buffer) DeleteForwards(n int) {
	deleted, _ := b.Screen.DeleteForwards(b.Cursor.Pos, n)
	if !deleted.isEmpty() {
		b.Fmt.DeleteRange(deleted)
	}
}

// EraseForwards implements ECH at the cursor: overwrite, no range shift.
func (b *Buffer) EraseForwards(n int) {
	r := b.Screen.EraseForwards(b.Cursor.Pos, n)
	if !r.isEmpty() {
		b.Fmt.PushRange(b.Cursor.Attrs, r)
	}
}

// ClearDisplayFromCursorToEnd implements ED 0.
func (b *Buffer) ClearDisplayFromCursorToEnd() {
	idx := b.Screen.ClearForwards(b.Cursor.Pos)
	b.Fmt.PushRange(defaultFormatAttrs(), Range{Start: idx, End: unboundedEnd})
}

// ClearDisplayFromStartToCursor implements ED 1.
func (b *Buffer) ClearDisplayFromStartToCursor() {
	r := b.Screen.ClearBackwards(b.Cursor.Pos)
	if !r.isEmpty() {
		b.Fmt.PushRange(defaultFormatAttrs(), r)
	}
}

// ClearDisplay implements ED 2.
func (b *Buffer) ClearDisplay() {
	r := b.Screen.ClearVisible()
	if !r.isEmpty() {
		b.Fmt.PushRange(defaultFormatAttrs(), r)
	}
}

// ClearScrollbackAndDisplay implements ED 3.
func (b *Buffer) ClearScrollbackAndDisplay() {
	b.Screen.ClearAll()
	b.Fmt = NewFormatTracker()
	b.Cursor.Pos = CursorPos{}
}

// ClearLineForwards implements EL 0.
func (b *Buffer) ClearLineForwards() {
	r := b.Screen.ClearLineForwards(b.Cursor.Pos)
	if !r.isEmpty() {
		b.Fmt.PushRange(defaultFormatAttrs(), r)
	}
}

// ClearLineBackwards implements EL 1.
func (b *Buffer) ClearLineBackwards() {
	r := b.Screen.ClearLineBackwards(b.Cursor.Pos)
	if !r.isEmpty() {
		b.Fmt.PushRange(defaultFormatAttrs(), r)
	}
}

// ClearLine implements EL 2.
func (b *Buffer) ClearLine() {
	r := b.Screen.ClearLine(b.Cursor.Pos)
	if !r.isEmpty() {
		b.Fmt.PushRange(defaultFormatAttrs(), r)
	}
}

// SetWinSize resizes the buffer in place (§4.5 set_win_size).
func (b *Buffer) SetWinSize(w, h int) {
	_, newPos := b.Screen.SetWinSize(w, h, b.Cursor.Pos)
	b.Cursor.Pos = newPos
	b.scrollBottom = h - 1
}

// ClipLines bounds scrollback memory, compacting Fmt to match (§4.5
// clip_lines).
func (b *Buffer) ClipLines(maxLines int) *Range {
	dropped := b.Screen.ClipLines(maxLines)
	if dropped != nil {
		b.Fmt.DeleteRange(*dropped)
	}
	return dropped
}

// SaveCursor captures position/attrs/origin/charset for DECSC (§4.7).
func (b *Buffer) SaveCursor(origin bool, activeCharset CharsetIndex, charsets [4]Charset) {
	b.Saved = &SavedCursor{
		Pos:           b.Cursor.Pos,
		Attrs:         b.Cursor.Attrs,
		OriginMode:    origin,
		ActiveCharset: activeCharset,
		Charsets:      charsets,
	}
}

// RestoreCursor applies a previously saved cursor, if any (DECRC).
func (b *Buffer) RestoreCursor() *SavedCursor {
	if b.Saved == nil {
		return nil
	}
	b.Cursor.Pos = b.Saved.Pos
	b.Cursor.Attrs = b.Saved.Attrs
	return b.Saved
}
