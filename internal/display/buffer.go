package display

// MaxLines bounds the buffer; the oldest line is evicted once this
// capacity is exceeded (spec: DisplayBuffer §4.6).
const MaxLines = 10_000

// Buffer is the bounded ring of Lines plus cursor/selection/search state.
// Not safe for concurrent use — it is owned and driven exclusively by the
// UI Controller's single-threaded render loop.
type Buffer struct {
	lines []Line

	cursor    int
	viewStart int

	selectionAnchor *int
	pendingG        bool

	search searchState

	clipboard Clipboard
}

// New constructs an empty buffer using the system clipboard.
func New() *Buffer {
	return NewWithClipboard(systemClipboard{})
}

// NewWithClipboard constructs an empty buffer with an injected clipboard,
// for testing.
func NewWithClipboard(clip Clipboard) *Buffer {
	return &Buffer{clipboard: clip}
}

// Len returns the number of lines currently retained.
func (b *Buffer) Len() int { return len(b.lines) }

// Cursor returns the current absolute cursor index.
func (b *Buffer) Cursor() int { return b.cursor }

// ViewStart returns the first visible absolute index.
func (b *Buffer) ViewStart() int { return b.viewStart }

// Line returns the line at absolute index i.
func (b *Buffer) Line(i int) Line { return b.lines[i] }

// PushLine appends a new line, evicting the oldest when at capacity and
// shifting every held absolute index down by one. The cursor auto-follows
// the new last line.
func (b *Buffer) PushLine(line Line) {
	if len(b.lines) >= MaxLines {
		b.lines = append(b.lines[1:], line)
		b.shiftIndicesDown(1)
	} else {
		b.lines = append(b.lines, line)
	}
	b.cursor = len(b.lines) - 1
}

func (b *Buffer) shiftIndicesDown(n int) {
	if b.selectionAnchor != nil {
		v := *b.selectionAnchor - n
		if v < 0 {
			v = 0
		}
		b.selectionAnchor = &v
	}
	shifted := b.search.matches[:0]
	for _, m := range b.search.matches {
		if m-n >= 0 {
			shifted = append(shifted, m-n)
		}
	}
	b.search.matches = shifted
	if b.search.matchCursor >= len(b.search.matches) {
		b.search.matchCursor = 0
	}
}

// Clear empties the buffer and resets all cursor/selection/search state —
// backs the "/clear" local command.
func (b *Buffer) Clear() {
	b.lines = nil
	b.cursor = 0
	b.viewStart = 0
	b.selectionAnchor = nil
	b.pendingG = false
	b.search = searchState{}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// MoveUp moves the cursor one line up and recomputes view_start.
func (b *Buffer) MoveUp(height int) { b.setCursor(b.cursor-1, height) }

// MoveDown moves the cursor one line down and recomputes view_start.
func (b *Buffer) MoveDown(height int) { b.setCursor(b.cursor+1, height) }

// HalfPageUp moves the cursor up by height/2 lines.
func (b *Buffer) HalfPageUp(height int) { b.setCursor(b.cursor-height/2, height) }

// HalfPageDown moves the cursor down by height/2 lines.
func (b *Buffer) HalfPageDown(height int) { b.setCursor(b.cursor+height/2, height) }

// GoToTop moves the cursor to the first line.
func (b *Buffer) GoToTop(height int) { b.setCursor(0, height) }

// GoToBottom moves the cursor to the last line.
func (b *Buffer) GoToBottom(height int) { b.setCursor(len(b.lines)-1, height) }

// PendingG and SetPendingG implement the `gg` two-key sequence: the first
// `g` sets pendingG, consumed by the second.
func (b *Buffer) PendingG() bool   { return b.pendingG }
func (b *Buffer) SetPendingG(v bool) { b.pendingG = v }

func (b *Buffer) setCursor(target, height int) {
	if len(b.lines) == 0 {
		b.cursor, b.viewStart = 0, 0
		return
	}
	b.cursor = clamp(target, 0, len(b.lines)-1)
	b.recomputeViewStart(height)
}

// recomputeViewStart keeps the cursor within the middle band of the
// viewport, per spec §4.6.
func (b *Buffer) recomputeViewStart(height int) {
	if height <= 0 {
		return
	}
	margin := (height * 25) / 100

	if b.cursor-b.viewStart < margin {
		b.viewStart = b.cursor - margin
	} else if b.cursor-b.viewStart >= height-margin {
		b.viewStart = b.cursor - (height - margin - 1)
	}

	maxStart := len(b.lines) - height
	if maxStart < 0 {
		maxStart = 0
	}
	b.viewStart = clamp(b.viewStart, 0, maxStart)
}

// ToggleVisual enters visual mode (anchored at the cursor) or exits it.
func (b *Buffer) ToggleVisual() {
	if b.selectionAnchor != nil {
		b.selectionAnchor = nil
		return
	}
	anchor := b.cursor
	b.selectionAnchor = &anchor
}

// ClearVisual exits visual mode unconditionally (Escape).
func (b *Buffer) ClearVisual() { b.selectionAnchor = nil }

// InVisualMode reports whether a selection is active.
func (b *Buffer) InVisualMode() bool { return b.selectionAnchor != nil }

// SelectionRange returns the inclusive [lo, hi] selected range, or ok=false
// if no selection is active.
func (b *Buffer) SelectionRange() (lo, hi int, ok bool) {
	if b.selectionAnchor == nil {
		return 0, 0, false
	}
	anchor := *b.selectionAnchor
	if anchor <= b.cursor {
		return anchor, b.cursor, true
	}
	return b.cursor, anchor, true
}
