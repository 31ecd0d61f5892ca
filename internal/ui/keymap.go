package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings for every screen.
type KeyMap struct {
	Connect    key.Binding
	Initialize key.Binding
	Submit     key.Binding
	Refresh    key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Quit       key.Binding
	// QuitLetter is only active outside the gallery, where q would be typed.
	QuitLetter key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Connect: key.NewBinding(
			key.WithKeys("enter", "c"),
			key.WithHelp("enter/c", "connect wallet"),
		),
		Initialize: key.NewBinding(
			key.WithKeys("enter", "i"),
			key.WithHelp("enter/i", "initialize account"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "refresh"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
		QuitLetter: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ForScreen returns the bindings shown in the help line for s.
func (k KeyMap) ForScreen(s Screen) []key.Binding {
	switch s {
	case ScreenConnect:
		return []key.Binding{k.Connect, k.QuitLetter}
	case ScreenInitialize:
		return []key.Binding{k.Initialize, k.Refresh, k.QuitLetter}
	default:
		return []key.Binding{k.Submit, k.Refresh, k.PageDown, k.PageUp, k.Quit}
	}
}
