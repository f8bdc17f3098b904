package tui

import "github.com/charmbracelet/lipgloss"

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	docStyle = lipgloss.NewStyle().Padding(1, 2)

	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	doneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	subjectStyle = lipgloss.NewStyle().Bold(true)

	barFillStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))

	barRestStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)
