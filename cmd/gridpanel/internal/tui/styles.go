package tui

import "github.com/charmbracelet/lipgloss"

// Theme colors.
const (
	ColorAccent    = "86"  // titles
	ColorHighlight = "205" // focused cell
	ColorMuted     = "241" // hints
	ColorText      = "252" // cells
)

// Styles contains the style definitions used by the grid view.
var Styles = struct {
	Title   lipgloss.Style
	Status  lipgloss.Style
	Cell    lipgloss.Style
	Focused lipgloss.Style
	Empty   lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Cell: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Focused: lipgloss.NewStyle().
		Bold(true).
		Reverse(true).
		Foreground(lipgloss.Color(ColorHighlight)),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
}
