package ui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles shared across the UI Controller's
// widgets and popups.
type Styles struct {
	ConfigBar    lipgloss.Style
	Display      lipgloss.Style
	DisplayTitle lipgloss.Style
	InputBar     lipgloss.Style
	InputBarOn   lipgloss.Style
	Popup        lipgloss.Style
	Notification lipgloss.Style
	SearchPrompt lipgloss.Style
}

// DefaultStyles matches the teacher's plain-border Charm look: rounded
// borders, a highlighted border on the focused widget.
func DefaultStyles() Styles {
	bordered := func(color string) lipgloss.Style {
		return lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(color))
	}
	return Styles{
		ConfigBar:    bordered("240"),
		Display:      bordered("240"),
		DisplayTitle: lipgloss.NewStyle().Bold(true),
		InputBar:     bordered("240"),
		InputBarOn:   bordered("212"),
		Popup:        bordered("212").Padding(0, 1),
		Notification: lipgloss.NewStyle().Background(lipgloss.Color("58")).Foreground(lipgloss.Color("230")).Padding(0, 1),
		SearchPrompt: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	}
}
