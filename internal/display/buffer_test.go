package display

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainLine(text string) Line {
	return NewLine(Span{Text: text})
}

func TestPushLineRespectsMaxLinesAndKeepsTrailingInput(t *testing.T) {
	b := New()
	total := MaxLines + 250
	for i := 0; i < total; i++ {
		b.PushLine(plainLine(fmt.Sprintf("line-%d", i)))
	}

	require.Equal(t, MaxLines, b.Len())
	for i := 0; i < MaxLines; i++ {
		want := fmt.Sprintf("line-%d", total-MaxLines+i)
		assert.Equal(t, want, b.Line(i).PlainText())
	}
}

func TestCursorViewStartInvariantHoldsAcrossOperations(t *testing.T) {
	b := New()
	for i := 0; i < 200; i++ {
		b.PushLine(plainLine(fmt.Sprintf("l%d", i)))
	}

	height := 20
	ops := []func(){
		func() { b.MoveUp(height) },
		func() { b.MoveDown(height) },
		func() { b.HalfPageUp(height) },
		func() { b.HalfPageDown(height) },
		func() { b.GoToTop(height) },
		func() { b.GoToBottom(height) },
	}
	for i, op := range ops {
		_ = i
		op()
		assert.GreaterOrEqual(t, b.ViewStart(), 0)
		assert.LessOrEqual(t, b.ViewStart(), b.Cursor())
		assert.Less(t, b.Cursor(), b.Len())
		if height > 0 {
			assert.Less(t, b.Cursor()-b.ViewStart(), height)
		}
	}
}

func TestSearchMatchesAreCaseInsensitiveSubstringAscending(t *testing.T) {
	b := New()
	texts := []string{"alpha", "beta", "alphabet", "gamma", "ALPHAWOLF"}
	for _, s := range texts {
		b.PushLine(plainLine(s))
	}

	b.StartSearch()
	for _, r := range "al" {
		b.AppendSearchChar(r)
	}
	b.CommitSearch(10)

	assert.Equal(t, []int{0, 2, 4}, b.SearchMatches())
}

func TestNavigationScenario(t *testing.T) {
	b := New()
	for i := 0; i < 50; i++ {
		b.PushLine(plainLine(fmt.Sprintf("l%d", i)))
	}
	height := 10

	b.GoToTop(height)
	assert.Equal(t, 0, b.Cursor())
	assert.Equal(t, 0, b.ViewStart())

	b.GoToBottom(height)
	assert.Equal(t, 49, b.Cursor())
	assert.Equal(t, 40, b.ViewStart())

	b.HalfPageDown(height) // Ctrl+d from the last line stays at the last line
	assert.Equal(t, 49, b.Cursor())
}

type fakeClipboard struct {
	written string
	err     error
}

func (f *fakeClipboard) WriteAll(text string) error {
	f.written = text
	return f.err
}

func TestVisualYankScenario(t *testing.T) {
	clip := &fakeClipboard{}
	b := NewWithClipboard(clip)
	for _, s := range []string{"a", "b", "c", "d"} {
		b.PushLine(plainLine(s))
	}
	b.GoToTop(10)
	b.MoveDown(10) // cursor = 1 ("b")
	b.ToggleVisual()
	b.MoveDown(10) // cursor = 2 ("c")

	msg := b.Yank()

	assert.Equal(t, "b\nc", clip.written)
	assert.Equal(t, "Yanked 2 line(s)", msg)
	assert.False(t, b.InVisualMode())
}

func TestYankFailureReportsReason(t *testing.T) {
	clip := &fakeClipboard{err: assertErr("no display server")}
	b := NewWithClipboard(clip)
	b.PushLine(plainLine("only line"))

	msg := b.Yank()
	assert.Equal(t, "Yank failed: no display server", msg)
}

type assertErr string

func (e assertErr) Error() string { return string(e) }

func TestSearchAndNavigateScenario(t *testing.T) {
	b := New()
	for _, s := range []string{"alpha", "beta", "alphabet", "gamma"} {
		b.PushLine(plainLine(s))
	}

	b.StartSearch()
	for _, r := range "al" {
		b.AppendSearchChar(r)
	}
	b.CommitSearch(10)

	require.Equal(t, []int{0, 2}, b.SearchMatches())
	assert.Equal(t, 0, b.Cursor())
	assert.Equal(t, "[1/2]", b.titleSuffix())

	b.NextMatch(10)
	assert.Equal(t, 2, b.Cursor())
	assert.Equal(t, "[2/2]", b.titleSuffix())

	b.NextMatch(10)
	assert.Equal(t, 0, b.Cursor())
}

func TestRenderRecomputesViewStartAfterPushWithoutNavigation(t *testing.T) {
	b := New()
	height := 10
	for i := 0; i < 5; i++ {
		b.PushLine(plainLine(fmt.Sprintf("l%d", i)))
	}
	b.GoToBottom(height)

	// New lines keep arriving (as they do from the Hub) with no
	// intervening keypress, so view_start is stale until the next render.
	for i := 5; i < 40; i++ {
		b.PushLine(plainLine(fmt.Sprintf("l%d", i)))
	}
	assert.Equal(t, 39, b.Cursor())

	res := b.Render(height)
	assert.Less(t, b.Cursor()-b.ViewStart(), height)
	assert.Equal(t, 39, res.Lines[len(res.Lines)-1].Index)
}

func TestClearResetsEverything(t *testing.T) {
	b := New()
	b.PushLine(plainLine("x"))
	b.ToggleVisual()
	b.Clear()

	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 0, b.Cursor())
	assert.False(t, b.InVisualMode())
}
