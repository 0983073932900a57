package termcore

// ScreenBuffer maps a linear sequence of TChar to visible rows/columns
// under a wrapping discipline (§3, §4.5). It is intentionally a flat slice,
// not a 2-D grid: row/column views are always derived from LineRanges.
type ScreenBuffer struct {
	buf    []TChar
	width  int
	height int
}

// NewScreenBuffer creates an empty buffer with the given dimensions.
func NewScreenBuffer(width, height int) *ScreenBuffer {
	return &ScreenBuffer{width: width, height: height}
}

func (s *ScreenBuffer) Width() int  { return s.width }
func (s *ScreenBuffer) Height() int { return s.height }

// Len returns the total number of TChars, scrollback included.
func (s *ScreenBuffer) Len() int { return len(s.buf) }

// At returns the TChar at buffer index i.
func (s *ScreenBuffer) At(i int) TChar { return s.buf[i] }

// Slice returns a copy of buf[start:end].
func (s *ScreenBuffer) Slice(start, end int) []TChar {
	out := make([]TChar, end-start)
	copy(out, s.buf[start:end])
	return out
}

// LineRanges returns every maximal line range (scrollback and visible), per
// the rule in §3: a range ends at a NewLine (inclusive), or upon reaching
// exactly width non-newline TChars, whichever comes first; a final partial
// range (no NewLine, < width chars) covers any remaining tail.
func (s *ScreenBuffer) LineRanges() []Range {
	var ranges []Range
	start := 0
	count := 0
	for i, c := range s.buf {
		if c.IsNewLine() {
			ranges = append(ranges, Range{Start: start, End: i + 1})
			start = i + 1
			count = 0
			continue
		}
		count++
		if count == s.width {
			ranges = append(ranges, Range{Start: start, End: i + 1})
			start = i + 1
			count = 0
		}
	}
	if start < len(s.buf) {
		ranges = append(ranges, Range{Start: start, End: len(s.buf)})
	}
	return ranges
}

func visibleOf(ranges []Range, height int) []Range {
	if len(ranges) <= height {
		return ranges
	}
	return ranges[len(ranges)-height:]
}

// VisibleLineRanges returns the last Height entries of LineRanges.
func (s *ScreenBuffer) VisibleLineRanges() []Range {
	return visibleOf(s.LineRanges(), s.height)
}

// ScrollbackLineRanges returns every line range that precedes the visible
// window.
func (s *ScreenBuffer) ScrollbackLineRanges() []Range {
	all := s.LineRanges()
	vis := visibleOf(all, s.height)
	return all[:len(all)-len(vis)]
}

// lineRangeAt returns the visible range for row y, or — if y is exactly
// one past the last existing visible range — a synthetic empty range at
// the buffer's end representing the not-yet-materialized next line.
// Callers must ensure y has already been reached via padVertical.
func (s *ScreenBuffer) lineRangeAt(y int) Range {
	vis := s.VisibleLineRanges()
	if y >= 0 && y < len(vis) {
		return vis[y]
	}
	return Range{Start: len(s.buf), End: len(s.buf)}
}

func (s *ScreenBuffer) lineContentLen(r Range) int {
	n := r.Len()
	if n > 0 && s.buf[r.End-1].IsNewLine() {
		n--
	}
	return n
}

// BufToCursorPos maps a buffer index to (x, y) in the visible window
// (testable property §8.3). For i < Len() this is the unique visible range
// containing i. i == Len() (the position right after everything written so
// far) is also accepted, resolving to the end of the open last line — or,
// if the buffer is empty or ends in NewLine, the start of the not-yet-
// created next line.
func (s *ScreenBuffer) BufToCursorPos(i int) CursorPos {
	vis := s.VisibleLineRanges()
	if i < len(s.buf) {
		for y, r := range vis {
			if i >= r.Start && i < r.End {
				return CursorPos{X: i - r.Start, Y: y}
			}
		}
	}
	if len(vis) == 0 {
		return CursorPos{X: i, Y: 0}
	}
	last := vis[len(vis)-1]
	if i >= last.Start {
		return CursorPos{X: i - last.Start, Y: len(vis) - 1}
	}
	return CursorPos{X: 0, Y: len(vis)}
}

// CursorToBufPos is the left-inverse of BufToCursorPos on valid visible
// positions (§8.3): pos.Y must name an existing visible line.
func (s *ScreenBuffer) CursorToBufPos(pos CursorPos) (int, bool) {
	vis := s.VisibleLineRanges()
	if pos.Y < 0 || pos.Y >= len(vis) {
		return 0, false
	}
	r := vis[pos.Y]
	idx := r.Start + pos.X
	if idx > r.End {
		idx = r.End
	}
	return idx, true
}

func (s *ScreenBuffer) insertTCharsAt(at int, chars []TChar) {
	if len(chars) == 0 {
		return
	}
	s.buf = append(s.buf, chars...)
	copy(s.buf[at+len(chars):], s.buf[at:len(s.buf)-len(chars)])
	copy(s.buf[at:at+len(chars)], chars)
}

func (s *ScreenBuffer) deleteTCharsAt(at, n int) Range {
	if n <= 0 {
		return Range{Start: at, End: at}
	}
	if at+n > len(s.buf) {
		n = len(s.buf) - at
	}
	copy(s.buf[at:], s.buf[at+n:])
	s.buf = s.buf[:len(s.buf)-n]
	return Range{Start: at, End: at + n}
}

// padVertical appends NewLine sentinels until row y itself is materialized
// as a real (possibly empty) newline-terminated line, not merely until the
// rows before it exist (§4.5 insert_data, phase 1). Materializing row y up
// front — rather than leaving it as a synthetic not-yet-written tail — is
// what gives a write that lands exactly on a width boundary its trailing
// NewLine for free: the sentinel is already there before padHorizontal or
// the write itself ever runs, so there is nothing to special-case after
// the fact.
func (s *ScreenBuffer) padVertical(y int) Range {
	start := len(s.buf)
	for len(s.VisibleLineRanges()) < y+1 {
		s.buf = append(s.buf, NewLineTChar())
	}
	return Range{Start: start, End: len(s.buf)}
}

// padHorizontal inserts spaces so row y's content reaches column x (§4.5
// insert_data, phase 2). Assumes padVertical has already materialized row y.
func (s *ScreenBuffer) padHorizontal(y, x int) Range {
	r := s.lineRangeAt(y)
	contentLen := s.lineContentLen(r)
	if x <= contentLen {
		return Range{Start: r.Start + contentLen, End: r.Start + contentLen}
	}
	insertAt := r.Start + contentLen
	n := x - contentLen
	spaces := make([]TChar, n)
	for i := range spaces {
		spaces[i] = SpaceTChar()
	}
	s.insertTCharsAt(insertAt, spaces)
	return Range{Start: insertAt, End: insertAt + n}
}

// InsertOutcome reports what a ScreenBuffer mutation touched, so callers
// can keep a FormatTracker coherent via PushRange/PushRangeAdjustment (§4.5).
type InsertOutcome struct {
	Written  Range
	Inserted Range
	NewPos   CursorPos
}

// InsertData writes data (trimmed of any trailing partial UTF-8, returned
// as leftover) at pos, padding as needed, and overwriting/extending the
// target line (§4.5 insert_data).
func (s *ScreenBuffer) InsertData(pos CursorPos, data []byte) (outcome InsertOutcome, leftover []byte) {
	valid, leftover := splitTrailingPartialUTF8(data)
	chars := decodeGraphemes(valid)
	if len(chars) == 0 {
		return InsertOutcome{NewPos: pos}, leftover
	}

	var insertedStart, insertedEnd = -1, -1
	if v := s.padVertical(pos.Y); !v.isEmpty() {
		insertedStart, insertedEnd = v.Start, v.End
	}
	if h := s.padHorizontal(pos.Y, pos.X); !h.isEmpty() {
		if insertedStart == -1 {
			insertedStart = h.Start
		}
		insertedEnd = h.End
	}

	r := s.lineRangeAt(pos.Y)
	idx := r.Start + pos.X
	lineEnd := s.lineRangeContentEnd(r)

	overwriteCount := lineEnd - idx
	if overwriteCount < 0 {
		overwriteCount = 0
	}
	if overwriteCount > len(chars) {
		overwriteCount = len(chars)
	}
	for i := 0; i < overwriteCount; i++ {
		s.buf[idx+i] = chars[i]
	}

	extra := len(chars) - overwriteCount
	if extra > 0 {
		s.insertTCharsAt(idx+overwriteCount, chars[overwriteCount:])
		if insertedStart == -1 {
			insertedStart = idx + overwriteCount
			insertedEnd = insertedStart + extra
		} else {
			insertedEnd += extra
		}
	}

	writeEnd := idx + len(chars)

	var inserted Range
	if insertedStart != -1 {
		inserted = Range{Start: insertedStart, End: insertedEnd}
	}
	return InsertOutcome{
		Written:  Range{Start: idx, End: writeEnd},
		Inserted: inserted,
		NewPos:   s.BufToCursorPos(writeEnd),
	}, leftover
}

// lineRangeContentEnd returns the index one past r's last non-newline
// TChar (i.e. r.End, minus the trailing newline if the range has one).
func (s *ScreenBuffer) lineRangeContentEnd(r Range) int {
	if r.Len() > 0 && s.buf[r.End-1].IsNewLine() {
		return r.End - 1
	}
	return r.End
}

// InsertSpaces implements ICH: clamp n to Width; if pos is inside an
// existing line of length L, insert min(n, Width-L) spaces before pos and
// overwrite the remainder with spaces up to the line's end, so ICH never
// grows a line past Width. If pos is past existing content, it behaves
// like InsertData with n spaces (§4.5 insert_spaces).
func (s *ScreenBuffer) InsertSpaces(pos CursorPos, n int) InsertOutcome {
	if n > s.width {
		n = s.width
	}
	if n <= 0 {
		return InsertOutcome{NewPos: pos}
	}

	r := s.lineRangeAt(pos.Y)
	contentLen := s.lineContentLen(r)
	if pos.X >= contentLen {
		spaces := make([]byte, n)
		for i := range spaces {
			spaces[i] = ' '
		}
		return s.insertDataNoTrim(pos, spaces)
	}

	lineLen := contentLen
	room := s.width - lineLen
	insertCount := n
	if insertCount > room {
		insertCount = room
	}
	idx := r.Start + pos.X
	spaces := make([]TChar, insertCount)
	for i := range spaces {
		spaces[i] = SpaceTChar()
	}
	s.insertTCharsAt(idx, spaces)

	overwriteCount := n - insertCount
	if overwriteCount > 0 {
		contentEnd := s.lineRangeContentEnd(Range{Start: r.Start, End: r.End + insertCount})
		at := idx + insertCount
		for i := 0; i < overwriteCount && at+i < contentEnd; i++ {
			s.buf[at+i] = SpaceTChar()
		}
	}

	return InsertOutcome{
		Written:  Range{Start: idx, End: idx + insertCount},
		Inserted: Range{Start: idx, End: idx + insertCount},
		NewPos:   pos,
	}
}

// insertDataNoTrim is InsertData without the trailing-partial-UTF8 leftover
// machinery, used internally when the caller already knows the bytes are
// complete ASCII (e.g. ICH's space-fill path).
func (s *ScreenBuffer) insertDataNoTrim(pos CursorPos, data []byte) InsertOutcome {
	outcome, _ := s.InsertData(pos, data)
	return outcome
}

// InsertLines implements IL: insert n newline markers at the start of the
// visible line containing pos, evicting from the bottom of the visible
// window just enough lines to keep the count at Height, then inserting. The
// eviction budget (availableSpace) is computed against the window as it
// stood before insertion, and n is clamped to the rows below pos first — so
// a request that already fits in the window's spare rows evicts nothing. If
// the previous character isn't a newline (the preceding line ended by
// wrap), one extra newline is spliced in beyond that budget so the
// insertion reads as an added line rather than a wrap split; this
// wrap-compensation newline rides along for free and isn't charged against
// availableSpace (§4.5 insert_lines).
func (s *ScreenBuffer) InsertLines(pos CursorPos, n int) (inserted Range, dropped *Range) {
	if n <= 0 {
		return Range{}, nil
	}
	vis := s.VisibleLineRanges()
	if pos.Y < 0 || pos.Y >= len(vis) {
		return Range{}, nil
	}
	at := vis[pos.Y].Start

	if n > s.height-pos.Y {
		n = s.height - pos.Y
	}

	availableSpace := s.height - len(vis)
	if n > availableSpace {
		numRemoved := n - availableSpace
		removalStart := vis[len(vis)-numRemoved].Start
		d := Range{Start: removalStart, End: len(s.buf)}
		s.buf = s.buf[:removalStart]
		dropped = &d
	}

	total := n
	if at > 0 && !s.buf[at-1].IsNewLine() {
		total++
	}
	nls := make([]TChar, total)
	for i := range nls {
		nls[i] = NewLineTChar()
	}
	s.insertTCharsAt(at, nls)
	inserted = Range{Start: at, End: at + total}

	return inserted, dropped
}

// DeleteForwards implements DCH: remove up to n cells starting at pos,
// clamped to the end of the current line. If the line had no trailing
// newline and deletion reaches its end, insert a newline to preserve line
// identity (§4.5 delete_forwards).
func (s *ScreenBuffer) DeleteForwards(pos CursorPos, n int) (deleted Range, newPos CursorPos) {
	r := s.lineRangeAt(pos.Y)
	idx := r.Start + pos.X
	lineEnd := s.lineRangeContentEnd(r)
	if idx >= lineEnd {
		return Range{Start: idx, End: idx}, pos
	}
	if n > lineEnd-idx {
		n = lineEnd - idx
	}
	hadTrailingNewline := lineEnd < r.End
	reachedEnd := idx == lineEnd-n // deletion ran to the (pre-delete) line end
	deleted = s.deleteTCharsAt(idx, n)

	if reachedEnd && !hadTrailingNewline {
		s.insertTCharsAt(idx, []TChar{NewLineTChar()})
	}
	return deleted, pos
}

// EraseForwards implements ECH: overwrite up to n cells with Space starting
// at pos, clamped to the current line. No insertion/deletion; ranges are
// unchanged (§4.5 erase_forwards).
func (s *ScreenBuffer) EraseForwards(pos CursorPos, n int) Range {
	r := s.lineRangeAt(pos.Y)
	idx := r.Start + pos.X
	lineEnd := s.lineRangeContentEnd(r)
	if idx >= lineEnd {
		return Range{Start: idx, End: idx}
	}
	if n > lineEnd-idx {
		n = lineEnd - idx
	}
	for i := 0; i < n; i++ {
		s.buf[idx+i] = SpaceTChar()
	}
	return Range{Start: idx, End: idx + n}
}

// ClearForwards implements ED 0: truncate the buffer at pos's index, then
// append enough newlines to preserve the visible line count, so the
// cursor's reported position is unchanged (§4.5 clear_forwards).
func (s *ScreenBuffer) ClearForwards(pos CursorPos) int {
	idx, ok := s.CursorToBufPos(pos)
	if !ok {
		idx = len(s.buf)
	}
	visBefore := len(s.VisibleLineRanges())
	s.buf = s.buf[:idx]
	for len(s.VisibleLineRanges()) < visBefore {
		s.buf = append(s.buf, NewLineTChar())
	}
	return idx
}

// ClearBackwards implements ED 1: replace all cells from the start of the
// visible region up to (not including) pos with Space, preserving newlines
// (§4.5 clear_backwards).
func (s *ScreenBuffer) ClearBackwards(pos CursorPos) Range {
	vis := s.VisibleLineRanges()
	if len(vis) == 0 {
		return Range{}
	}
	start := vis[0].Start
	end, ok := s.CursorToBufPos(pos)
	if !ok {
		end = start
	}
	for i := start; i < end; i++ {
		if !s.buf[i].IsNewLine() {
			s.buf[i] = SpaceTChar()
		}
	}
	return Range{Start: start, End: end}
}

// ClearVisible implements ED 2: replace all non-newline cells in the
// visible region with Space (scrollback untouched) (§4.5 clear_visible).
func (s *ScreenBuffer) ClearVisible() Range {
	vis := s.VisibleLineRanges()
	if len(vis) == 0 {
		return Range{}
	}
	start := vis[0].Start
	end := len(s.buf)
	for i := start; i < end; i++ {
		if !s.buf[i].IsNewLine() {
			s.buf[i] = SpaceTChar()
		}
	}
	return Range{Start: start, End: end}
}

// ClearAll implements ED 3: empty the buffer entirely (§4.5 clear_all).
func (s *ScreenBuffer) ClearAll() {
	s.buf = s.buf[:0]
}

// ClearLineForwards implements EL 0, scoped to the current line.
func (s *ScreenBuffer) ClearLineForwards(pos CursorPos) Range {
	r := s.lineRangeAt(pos.Y)
	idx := r.Start + pos.X
	contentEnd := s.lineRangeContentEnd(r)
	if idx > contentEnd {
		idx = contentEnd
	}
	for i := idx; i < contentEnd; i++ {
		s.buf[i] = SpaceTChar()
	}
	return Range{Start: idx, End: contentEnd}
}

// ClearLineBackwards implements EL 1, scoped to the current line.
func (s *ScreenBuffer) ClearLineBackwards(pos CursorPos) Range {
	r := s.lineRangeAt(pos.Y)
	idx := r.Start + pos.X + 1
	contentEnd := s.lineRangeContentEnd(r)
	if idx > contentEnd {
		idx = contentEnd
	}
	for i := r.Start; i < idx; i++ {
		s.buf[i] = SpaceTChar()
	}
	return Range{Start: r.Start, End: idx}
}

// ClearLine implements EL 2, scoped to the current line.
func (s *ScreenBuffer) ClearLine(pos CursorPos) Range {
	r := s.lineRangeAt(pos.Y)
	contentEnd := s.lineRangeContentEnd(r)
	for i := r.Start; i < contentEnd; i++ {
		s.buf[i] = SpaceTChar()
	}
	return Range{Start: r.Start, End: contentEnd}
}

// SetWinSize resizes the buffer. The cursor's buffer index is materialized
// first (via padding), then width/height update, then the index is mapped
// through the new line ranges (§4.5 set_win_size).
func (s *ScreenBuffer) SetWinSize(w, h int, pos CursorPos) (changed bool, newPos CursorPos) {
	if w == s.width && h == s.height {
		return false, pos
	}
	s.padVertical(pos.Y)
	s.padHorizontal(pos.Y, pos.X)
	r := s.lineRangeAt(pos.Y)
	idx := r.Start + pos.X

	s.width = w
	s.height = h

	return true, s.BufToCursorPos(idx)
}

// ClipLines bounds memory: once the total line count exceeds maxLines,
// delete the earliest line range and return it so the caller can compact
// its FormatTracker accordingly (§4.5 clip_lines).
func (s *ScreenBuffer) ClipLines(maxLines int) *Range {
	all := s.LineRanges()
	if len(all) <= maxLines {
		return nil
	}
	first := all[0]
	s.buf = s.buf[first.End-first.Start:]
	dropped := Range{Start: 0, End: first.End}
	return &dropped
}

// decodeGraphemes converts a (complete, non-partial) byte slice into
// grapheme-cluster TChars, dropping any byte that fails to decode as
// UTF-8 even with best-effort recovery (§7 "UTF-8 invalid").
func decodeGraphemes(b []byte) []TChar {
	return splitGraphemes(sanitizeUTF8(b))
}
