package tui

import "github.com/charmbracelet/lipgloss"

var (
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))

	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	CurrentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))

	MutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	ApprovedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	PendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	ButtonStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))

	DisabledButtonStyle = ButtonStyle.
				Foreground(lipgloss.Color("241")).
				BorderForeground(lipgloss.Color("241"))
)
