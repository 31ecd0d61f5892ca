package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - titles, the connected address
	ColorHighlight = "205" // Magenta - buttons, borders
	ColorDanger    = "196" // Red - alerts
	ColorMuted     = "241" // Gray - hints, submitters
	ColorText      = "252" // Light gray - links
)

// Styles contains shared style definitions used across screens and the alert.
var Styles = struct {
	Title      lipgloss.Style // Header title
	Subtitle   lipgloss.Style // Header subtitle
	Button     lipgloss.Style // Call-to-action box (connect, initialize)
	Alert      lipgloss.Style // Blocking alert box
	AlertTitle lipgloss.Style // Bold danger color - alert heading
	Input      lipgloss.Style // Border around the draft input
	Link       lipgloss.Style // One gif link
	Muted      lipgloss.Style // Submitter address, footer
	Status     lipgloss.Style // Connected address
	Empty      lipgloss.Style // Empty gallery text
	Hint       lipgloss.Style // Help line
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Button: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true).
		Padding(0, 2),
	Alert: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorDanger)).
		Padding(1, 2).
		Margin(1),
	AlertTitle: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorDanger)),
	Input: lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(ColorMuted)).
		Padding(0, 1),
	Link: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
}
