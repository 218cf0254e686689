// Package display implements the bounded, cursor-navigable scrollback
// buffer (C6): visual range selection, clipboard yank, and substring
// search over rendered serial output.
package display

import "strings"

// Span is a styled run of text. A Line is a sequence of spans; once
// constructed, neither is mutated — new data becomes a new line rather
// than an edit to an existing one.
type Span struct {
	Text  string
	Style LineStyle
}

// LineStyle is the minimal style a span carries: foreground color and
// bold, enough to express the port-color tag used throughout the UI. Kept
// separate from lipgloss.Style so lines carry no rendering state; only
// render.go converts it to lipgloss, at render time.
type LineStyle struct {
	Foreground string // empty means "default"
	Bold       bool
}

// Line is a pre-styled, immutable display line.
type Line struct {
	Spans []Span
}

// NewLine builds a Line from spans.
func NewLine(spans ...Span) Line {
	return Line{Spans: spans}
}

// PlainText concatenates every span's text, discarding style — used for
// search matching and yank.
func (l Line) PlainText() string {
	if len(l.Spans) == 1 {
		return l.Spans[0].Text
	}
	var b strings.Builder
	for _, s := range l.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}
