package tui

import "github.com/charmbracelet/lipgloss"

// Color palette - keeping it minimal and accessible.
var (
	ColorWarning = lipgloss.Color("214") // Orange
	ColorError   = lipgloss.Color("196") // Red
	ColorMuted   = lipgloss.Color("240") // Dark gray
)

// Styles for diagnostic prefixes.
var (
	VerboseStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)
)

// Paint renders s with style when enabled is true and returns s unchanged
// otherwise.
func Paint(style lipgloss.Style, s string, enabled bool) string {
	if !enabled {
		return s
	}
	return style.Render(s)
}
