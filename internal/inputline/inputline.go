// Package inputline implements the single-line input buffer (C7): a
// wrapped bubbles/textinput plus a target-port selector that survives
// popup open/close.
package inputline

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/charmbracelet/bubbles/textinput"
)

// ActionKind tags the outcome of a key press on the input line.
type ActionKind int

const (
	ActionNone ActionKind = iota
	// ActionOpenSendGroup requests the send-group (target selector) popup.
	ActionOpenSendGroup
	// ActionSend carries the buffer's text, already cleared from the line.
	ActionSend
)

// Action is what HandleKey returns for the UI Controller to dispatch.
type Action struct {
	Kind ActionKind
	Text string
}

// Line is the input widget: an editable buffer plus a persistent target
// set (spec §3/§4.7).
type Line struct {
	model   textinput.Model
	targets TargetSet
}

// New constructs an empty, focused input line.
func New() *Line {
	m := textinput.New()
	m.Placeholder = "type to send…"
	m.Prompt = "> "
	m.Focus()
	return &Line{model: m, targets: NewTargetSet()}
}

// Focus gives the widget the text cursor.
func (l *Line) Focus() tea.Cmd { return l.model.Focus() }

// Blur removes the text cursor.
func (l *Line) Blur() { l.model.Blur() }

// View renders the current edit buffer.
func (l *Line) View() string { return l.model.View() }

// Value returns the buffer's current text without consuming it.
func (l *Line) Value() string { return l.model.Value() }

// Targets returns the persistent target-port set.
func (l *Line) Targets() *TargetSet { return &l.targets }

// HandleKey processes one key press. Ctrl+Space (bubbletea reports this as
// KeyCtrlAt, the ctrl+@ code point shared with ctrl+space) yields
// ActionOpenSendGroup. Enter yields ActionSend only when the buffer is
// non-empty, clearing it atomically. Every other key is forwarded to the
// wrapped textinput for normal editing (append/backspace/cursor motion).
func (l *Line) HandleKey(msg tea.KeyMsg) (Action, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlAt:
		return Action{Kind: ActionOpenSendGroup}, nil
	case tea.KeyEnter:
		text := l.model.Value()
		if text == "" {
			return Action{}, nil
		}
		l.model.SetValue("")
		return Action{Kind: ActionSend, Text: text}, nil
	}

	var cmd tea.Cmd
	l.model, cmd = l.model.Update(msg)
	return Action{}, cmd
}
