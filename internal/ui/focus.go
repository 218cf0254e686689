package ui

// Focus identifies which widget receives keys that no global binding or
// modal popup claims (spec §3 UI model).
type Focus int

const (
	FocusConfigBar Focus = iota
	FocusDisplay
	FocusInputBar
)

// Next cycles ConfigBar -> Display -> InputBar -> ConfigBar (spec §4.8:
// Tab's global binding).
func (f Focus) Next() Focus {
	switch f {
	case FocusConfigBar:
		return FocusDisplay
	case FocusDisplay:
		return FocusInputBar
	default:
		return FocusConfigBar
	}
}

func (f Focus) String() string {
	switch f {
	case FocusConfigBar:
		return "ConfigBar"
	case FocusDisplay:
		return "Display"
	case FocusInputBar:
		return "InputBar"
	default:
		return "?"
	}
}
