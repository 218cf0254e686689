package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	cursorLineStyle = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("8"))
	selectionStyle  = lipgloss.NewStyle().Background(lipgloss.Color("4"))
	matchStyle      = lipgloss.NewStyle().Background(lipgloss.Color("3")).Foreground(lipgloss.Color("0"))
	searchPromptFg  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// RenderedLine is one line ready to print, with overlay styling already
// applied.
type RenderedLine struct {
	Index int
	Text  string
}

// RenderResult is everything the UI needs to draw the display block for
// one frame.
type RenderResult struct {
	Lines              []RenderedLine
	TitleSuffix        string
	SearchPromptText   string
	SearchPromptActive bool
}

// Render produces the visible window [view_start, view_start+contentHeight)
// with the overlay-style priority cursor > selection > match > stored, and
// the title-suffix / search-prompt contract from spec §4.6.
func (b *Buffer) Render(contentHeight int) RenderResult {
	height := contentHeight
	if b.search.active && height > 0 {
		height--
	}

	b.recomputeViewStart(height)

	lo, hi, hasSelection := b.SelectionRange()
	matchSet := make(map[int]bool, len(b.search.matches))
	for _, m := range b.search.matches {
		matchSet[m] = true
	}

	end := b.viewStart + height
	if end > len(b.lines) {
		end = len(b.lines)
	}

	var lines []RenderedLine
	for i := b.viewStart; i < end; i++ {
		lines = append(lines, RenderedLine{Index: i, Text: b.renderLine(i, lo, hi, hasSelection, matchSet)})
	}

	return RenderResult{
		Lines:              lines,
		TitleSuffix:        b.titleSuffix(),
		SearchPromptText:   "/" + b.search.query,
		SearchPromptActive: b.search.active,
	}
}

func (b *Buffer) renderLine(i, lo, hi int, hasSelection bool, matchSet map[int]bool) string {
	line := b.lines[i]

	switch {
	case i == b.cursor:
		return cursorLineStyle.Render(line.PlainText())
	case hasSelection && i >= lo && i <= hi:
		return selectionStyle.Render(line.PlainText())
	case matchSet[i]:
		return matchStyle.Render(line.PlainText())
	default:
		return renderStored(line)
	}
}

func renderStored(line Line) string {
	if len(line.Spans) == 1 {
		return renderSpan(line.Spans[0])
	}
	var b strings.Builder
	for _, s := range line.Spans {
		b.WriteString(renderSpan(s))
	}
	return b.String()
}

func renderSpan(s Span) string {
	style := lipgloss.NewStyle()
	if s.Style.Foreground != "" {
		style = style.Foreground(lipgloss.Color(s.Style.Foreground))
	}
	if s.Style.Bold {
		style = style.Bold(true)
	}
	return style.Render(s.Text)
}

// titleSuffix implements spec §4.6: "[SEARCH]" while capturing a query,
// else "[VISUAL]" while a selection is set, else "[i/N]" when there are
// committed matches, else nothing.
func (b *Buffer) titleSuffix() string {
	switch {
	case b.search.active:
		return "[SEARCH]"
	case b.InVisualMode():
		return "[VISUAL]"
	case len(b.search.matches) > 0:
		return fmt.Sprintf("[%d/%d]", b.search.matchCursor+1, len(b.search.matches))
	default:
		return ""
	}
}

// RenderSearchPrompt returns the styled "/query" prompt text for the
// bottom row, with the distinguished color the spec calls for.
func RenderSearchPrompt(text string) string {
	return searchPromptFg.Render(text)
}
