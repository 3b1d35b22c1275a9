package tui

import "github.com/charmbracelet/lipgloss"

// Theme collects the styles the board view uses.
type Theme struct {
	Fixed    lipgloss.Style
	Entry    lipgloss.Style
	Marks    lipgloss.Style
	Selected lipgloss.Style
	Status   lipgloss.Style
	Help     lipgloss.Style
	Solved   lipgloss.Style
}

func DefaultTheme() Theme {
	return Theme{
		Fixed:    lipgloss.NewStyle().Bold(true),
		Entry:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		Marks:    lipgloss.NewStyle().Faint(true),
		Selected: lipgloss.NewStyle().Background(lipgloss.Color("24")),
		Status:   lipgloss.NewStyle().Bold(true),
		Help:     lipgloss.NewStyle().Faint(true),
		Solved:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
	}
}
