package theme

import "github.com/charmbracelet/lipgloss"

// Main UI styles
var (
	CursorStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(1, 0)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	NormalStyle = lipgloss.NewStyle().
			Foreground(ColorNormal)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(1, 0)
)

// Timer state styles
var (
	OverrunStyle = lipgloss.NewStyle().
			Foreground(ColorOverrun).
			Bold(true)

	PausedStyle = lipgloss.NewStyle().
			Foreground(ColorPaused)

	TrackingStyle = lipgloss.NewStyle().
			Foreground(ColorTracking)
)
