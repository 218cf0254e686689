package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kesler-labs/seriscope/internal/inputline"
)

// handleKey implements spec §4.8's routing precedence: modal popup first,
// then the global bindings, then the focused widget.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.popups.anyModal() {
		return m.handlePopupKey(msg)
	}

	// Search mode captures every key until Esc or Enter (spec §4.6), so it
	// must see them before the global Tab/"?"/Esc bindings do. Visual mode
	// has no such blanket capture, only a narrower claim on Esc (clears
	// the selection instead of quitting).
	if m.focus == FocusDisplay {
		switch {
		case m.display.SearchActive():
			return m.handleDisplayKey(msg)
		case msg.Type == tea.KeyEsc && m.display.InVisualMode():
			return m.handleDisplayKey(msg)
		}
	}

	switch {
	case msg.Type == tea.KeyEsc:
		m.quitting = true
		return m, nil
	case msg.Type == tea.KeyTab:
		m.focus = m.focus.Next()
		return m, nil
	case msg.String() == "?":
		m.popups.help = true
		return m, nil
	}

	switch m.focus {
	case FocusDisplay:
		return m.handleDisplayKey(msg)
	case FocusInputBar:
		return m.handleInputKey(msg)
	default: // FocusConfigBar
		return m.handleConfigBarKey(msg)
	}
}

func (m *Model) handlePopupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		m.popups.closeAll()
		return m, nil
	}

	switch {
	case m.popups.help:
		// Help is read-only; any other key is ignored.
		return m, nil

	case m.popups.portList.visible:
		ports := m.hub.ListPorts()
		switch msg.String() {
		case "j", "down":
			m.popups.portList.down(len(ports))
		case "k", "up":
			m.popups.portList.up()
		}
		return m, nil

	case m.popups.sendGroup.visible:
		ports := m.hub.ListPorts()
		switch msg.String() {
		case "j", "down":
			m.popups.sendGroup.down(len(ports))
		case "k", "up":
			m.popups.sendGroup.up()
		case " ", "enter":
			toggleSendGroupTarget(m.input.Targets(), ports, m.popups.sendGroup.cursor)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleDisplayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	height := m.contentHeight()
	d := m.display

	if d.SearchActive() {
		return m.handleSearchEntryKey(msg, height)
	}

	key := msg.String()
	if d.PendingG() {
		d.SetPendingG(false)
		if key == "g" {
			d.GoToTop(height)
		}
		return m, nil
	}

	switch key {
	case "esc":
		d.ClearVisual()
	case "j", "down":
		d.MoveDown(height)
	case "k", "up":
		d.MoveUp(height)
	case "ctrl+d":
		d.HalfPageDown(height)
	case "ctrl+u":
		d.HalfPageUp(height)
	case "g":
		d.SetPendingG(true)
	case "G":
		d.GoToBottom(height)
	case "v", "V":
		d.ToggleVisual()
	case "y":
		m.popups.notify.show(d.Yank())
	case "/":
		d.StartSearch()
	case "n":
		d.NextMatch(height)
	case "N":
		d.PrevMatch(height)
	case "enter":
		m.focus = FocusInputBar
		return m, m.input.Focus()
	}
	return m, nil
}

func (m *Model) handleSearchEntryKey(msg tea.KeyMsg, height int) (tea.Model, tea.Cmd) {
	d := m.display
	switch msg.Type {
	case tea.KeyEsc:
		d.CancelSearch()
	case tea.KeyEnter:
		d.CommitSearch(height)
	case tea.KeyBackspace:
		d.BackspaceSearch()
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			d.AppendSearchChar(r)
		}
	}
	return m, nil
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, cmd := m.input.HandleKey(msg)
	switch action.Kind {
	case inputline.ActionOpenSendGroup:
		m.popups.sendGroup.show()
	case inputline.ActionSend:
		m.dispatchSend(action.Text)
	}
	return m, cmd
}

// dispatchSend implements spec §4.7's command interception and §4.8's
// Send(text) behavior.
func (m *Model) dispatchSend(text string) {
	switch inputline.ParseCommand(text) {
	case inputline.CommandClear:
		m.display.Clear()
		return
	case inputline.CommandHelp:
		m.popups.help = !m.popups.help
		return
	case inputline.CommandPurge:
		if m.logStore != nil {
			m.logStore.Purge()
		}
		return
	}

	targets := m.input.Targets().Sorted()
	if len(targets) == 0 {
		m.popups.notify.show("No ports selected")
		return
	}
	if err := m.hub.Send(targets, []byte(text)); err != nil {
		m.popups.notify.show("Send failed: " + err.Error())
	}
}

func (m *Model) handleConfigBarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		m.popups.portList.show()
	}
	return m, nil
}
