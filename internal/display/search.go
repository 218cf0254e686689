package display

import "strings"

// searchState holds the display buffer's substring search mode and its
// last committed results (spec §4.6).
type searchState struct {
	active      bool
	query       string
	matches     []int
	matchCursor int
}

// SearchActive reports whether search-entry mode is capturing keys.
func (b *Buffer) SearchActive() bool { return b.search.active }

// SearchQuery returns the in-progress (or last committed) query text.
func (b *Buffer) SearchQuery() string { return b.search.query }

// SearchMatches returns the committed match indices, ascending.
func (b *Buffer) SearchMatches() []int { return b.search.matches }

// SearchMatchCursor returns the 0-indexed position within SearchMatches.
func (b *Buffer) SearchMatchCursor() int { return b.search.matchCursor }

// StartSearch enters search-entry mode with an empty query. Existing
// matches are left untouched until Commit.
func (b *Buffer) StartSearch() {
	b.search.active = true
	b.search.query = ""
}

// AppendSearchChar appends a printable rune to the in-progress query.
func (b *Buffer) AppendSearchChar(r rune) {
	if !b.search.active {
		return
	}
	b.search.query += string(r)
}

// BackspaceSearch removes the last rune of the in-progress query.
func (b *Buffer) BackspaceSearch() {
	if !b.search.active || b.search.query == "" {
		return
	}
	runes := []rune(b.search.query)
	b.search.query = string(runes[:len(runes)-1])
}

// CancelSearch exits search-entry mode without mutating matches.
func (b *Buffer) CancelSearch() {
	b.search.active = false
}

// CommitSearch executes a case-insensitive substring search across every
// line's plain text, records ascending match indices, and — if any match
// exists — jumps the cursor to the first one.
func (b *Buffer) CommitSearch(height int) {
	b.search.active = false
	query := strings.ToLower(b.search.query)

	var matches []int
	if query != "" {
		for i, line := range b.lines {
			if strings.Contains(strings.ToLower(line.PlainText()), query) {
				matches = append(matches, i)
			}
		}
	}
	b.search.matches = matches
	b.search.matchCursor = 0
	if len(matches) > 0 {
		b.setCursor(matches[0], height)
	}
}

// NextMatch advances to the next search match, wrapping around.
func (b *Buffer) NextMatch(height int) {
	if len(b.search.matches) == 0 {
		return
	}
	b.search.matchCursor = (b.search.matchCursor + 1) % len(b.search.matches)
	b.setCursor(b.search.matches[b.search.matchCursor], height)
}

// PrevMatch retreats to the previous search match, wrapping around.
func (b *Buffer) PrevMatch(height int) {
	if len(b.search.matches) == 0 {
		return
	}
	b.search.matchCursor = (b.search.matchCursor - 1 + len(b.search.matches)) % len(b.search.matches)
	b.setCursor(b.search.matches[b.search.matchCursor], height)
}
