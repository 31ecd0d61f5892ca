package ui

import tea "github.com/charmbracelet/bubbletea"

// View is a self-contained UI region with its own Init/Update/View, used for
// overlays that sit above the screen.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}
