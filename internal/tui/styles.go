package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170"))

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	focusedInputStyle = inputStyle.
				BorderForeground(lipgloss.Color("170"))

	suggestionStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	selectedSuggestionStyle = lipgloss.NewStyle().
				PaddingLeft(1).
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("170")).
				Bold(true)

	resultTitleStyle = lipgloss.NewStyle().Bold(true)

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)
