package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap is the global and display-focused key bindings (spec §6
// Keyboard). Input-focused editing keys are handled inside
// internal/inputline and are not listed here.
type KeyMap struct {
	Quit  key.Binding
	Tab   key.Binding
	Help  key.Binding
	Enter key.Binding

	Up           key.Binding
	Down         key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
	GoTop        key.Binding
	GoBottom     key.Binding
	Visual       key.Binding
	Yank         key.Binding
	Search       key.Binding
	NextMatch    key.Binding
	PrevMatch    key.Binding

	PopupClose  key.Binding
	PopupSelect key.Binding
}

// DefaultKeyMap builds the bindings exactly as spec §6 lists them.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "quit")),
		Tab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "cycle focus")),
		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Enter: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "focus input")),

		Up:           key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:         key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u"), key.WithHelp("ctrl+u", "half page up")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "half page down")),
		GoTop:        key.NewBinding(key.WithKeys("g"), key.WithHelp("gg", "top")),
		GoBottom:     key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "bottom")),
		Visual:       key.NewBinding(key.WithKeys("v", "V"), key.WithHelp("v/V", "visual select")),
		Yank:         key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yank")),
		Search:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		NextMatch:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next match")),
		PrevMatch:    key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "prev match")),

		PopupClose:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		PopupSelect: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space/enter", "select")),
	}
}

// ShortHelp satisfies help.KeyMap for the compact help line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Quit}
}

// FullHelp satisfies help.KeyMap for the "?" popup's expanded listing.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Quit, k.Tab, k.Help},
		{k.Up, k.Down, k.HalfPageUp, k.HalfPageDown, k.GoTop, k.GoBottom},
		{k.Visual, k.Yank, k.Search, k.NextMatch, k.PrevMatch},
	}
}
