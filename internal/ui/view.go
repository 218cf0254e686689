package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kesler-labs/seriscope/internal/serial"
)

func (m *Model) View() string {
	if m.width == 0 {
		return "starting…"
	}

	layers := []string{
		m.renderConfigBar(),
		m.renderDisplay(),
		m.renderInputBar(),
	}
	base := lipgloss.JoinVertical(lipgloss.Left, layers...)

	switch {
	case m.popups.help:
		return overlay(base, m.renderHelpPopup())
	case m.popups.portList.visible:
		return overlay(base, m.renderPortListPopup())
	case m.popups.sendGroup.visible:
		return overlay(base, m.renderSendGroupPopup())
	}

	if m.popups.notify.active() {
		return base + "\n" + m.styles.Notification.Render(m.popups.notify.message)
	}
	return base
}

func (m *Model) renderConfigBar() string {
	style := m.styles.ConfigBar
	if m.focus == FocusConfigBar {
		style = m.styles.InputBarOn
	}

	ports := m.hub.ListPorts()
	names := make([]string, 0, len(ports))
	for _, p := range ports {
		names = append(names, fmt.Sprintf("%s(%s)", p.Name, p.Config.Color.String()))
	}
	content := "ports: " + strings.Join(names, "  ")
	if len(names) == 0 {
		content = "ports: (none configured — press Enter here to browse)"
	}
	return style.Width(m.width - 2).Render(content)
}

func (m *Model) renderDisplay() string {
	style := m.styles.Display
	if m.focus == FocusDisplay {
		style = m.styles.InputBarOn
	}

	height := m.contentHeight()
	res := m.display.Render(height)

	var b strings.Builder
	title := "Display"
	if res.TitleSuffix != "" {
		title += " " + res.TitleSuffix
	}
	b.WriteString(m.styles.DisplayTitle.Render(title))
	b.WriteString("\n")
	for _, line := range res.Lines {
		b.WriteString(line.Text)
		b.WriteString("\n")
	}
	if res.SearchPromptActive {
		b.WriteString(m.styles.SearchPrompt.Render(res.SearchPromptText))
	}

	return style.Width(m.width - 2).Height(height + 1).Render(b.String())
}

func (m *Model) renderInputBar() string {
	style := m.styles.InputBar
	if m.focus == FocusInputBar {
		style = m.styles.InputBarOn
	}
	targets := m.input.Targets().Sorted()
	suffix := ""
	if len(targets) > 0 {
		suffix = fmt.Sprintf("  -> %v", targets)
	}
	return style.Width(m.width - 2).Render(m.input.View() + suffix)
}

func (m *Model) renderHelpPopup() string {
	m.popups.helpModel.ShowAll = true
	return m.styles.Popup.Render(m.popups.helpModel.View(m.keys))
}

func (m *Model) renderPortListPopup() string {
	ports := m.hub.ListPorts()
	var b strings.Builder
	b.WriteString("Ports\n")
	for i, p := range ports {
		cursor := "  "
		if i == m.popups.portList.cursor {
			cursor = "> "
		}
		presence := "device missing"
		if serial.Present(m.devices, p.Config.Path) {
			presence = "device present"
		}
		fmt.Fprintf(&b, "%s%s  %s @ %d  (%s)\n", cursor, p.Name, p.Config.Path, p.Config.BaudRate, presence)
	}
	return m.styles.Popup.Render(b.String())
}

func (m *Model) renderSendGroupPopup() string {
	ports := m.hub.ListPorts()
	targets := m.input.Targets()
	var b strings.Builder
	b.WriteString("Send group (space/enter toggles)\n")
	for i, p := range ports {
		cursor := "  "
		if i == m.popups.sendGroup.cursor {
			cursor = "> "
		}
		mark := "[ ]"
		if targets.Contains(p.Name) {
			mark = "[x]"
		}
		fmt.Fprintf(&b, "%s%s %s\n", cursor, mark, p.Name)
	}
	return m.styles.Popup.Render(b.String())
}

// overlay places popup on top of base by simply appending it below — a
// plain terminal has no real z-order, so popups render as a trailing
// block rather than compositing over specific cells.
func overlay(base, popup string) string {
	return base + "\n" + popup
}
