package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds the lipgloss styles for the chat view.
type Theme struct {
	Title     lipgloss.Style
	UserLine  lipgloss.Style
	BotLine   lipgloss.Style
	Help      lipgloss.Style
	InputArea lipgloss.Style
}

// DefaultTheme returns the standard chat styling.
func DefaultTheme() Theme {
	return Theme{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			MarginBottom(1),
		UserLine: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true),
		BotLine: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		InputArea: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1),
	}
}
