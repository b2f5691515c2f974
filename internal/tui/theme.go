package tui

import "github.com/charmbracelet/lipgloss"

// Color palette for the dashboard.
const (
	colorPrimary = lipgloss.Color("#36a2eb")
	colorAccent  = lipgloss.Color("#4bc0c0")
	colorDanger  = lipgloss.Color("#ff6384")
	colorMuted   = lipgloss.Color("#6B7280")
	colorText    = lipgloss.Color("#E5E7EB")
)

var (
	styleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Padding(0, 1)

	styleStatus = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	stylePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	styleChatPanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1)

	styleMuted = lipgloss.NewStyle().Foreground(colorMuted)

	styleUser = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	styleBot = lipgloss.NewStyle().Foreground(colorText)

	styleBotError = lipgloss.NewStyle().Foreground(colorDanger)

	styleFooter = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)
)
