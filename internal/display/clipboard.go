package display

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// Clipboard is the external collaborator a yank writes to (spec §6:
// "External collaborator supplying set_text(string) → Ok | Err").
type Clipboard interface {
	WriteAll(text string) error
}

// systemClipboard is the real clipboard, backed by atotto/clipboard. It is
// held as a value on Buffer (rather than looked up fresh per call) per
// spec §4.6's note that the handle may need to outlive the write on some
// platforms.
type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Yank copies the selected range (or the cursor line alone, if no
// selection is active) to the clipboard, joining lines with "\n" and
// discarding styling. Visual mode is cleared unconditionally, regardless
// of outcome. Returns the notification message the caller should display.
func (b *Buffer) Yank() string {
	defer b.ClearVisual()

	if len(b.lines) == 0 {
		return "Nothing to yank"
	}

	lo, hi, ok := b.SelectionRange()
	if !ok {
		lo, hi = b.cursor, b.cursor
	}

	texts := make([]string, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		texts = append(texts, b.lines[i].PlainText())
	}
	joined := strings.Join(texts, "\n")

	if err := b.clipboard.WriteAll(joined); err != nil {
		return fmt.Sprintf("Yank failed: %s", err)
	}
	return fmt.Sprintf("Yanked %d line(s)", len(texts))
}
