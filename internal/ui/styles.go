// Package ui provides the terminal front end: styled console output, a
// markdown renderer for assistant turns, and the interactive prompts the
// agent blocks on (goal input and shell consent).
package ui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("205")
	ColorSuccess = lipgloss.Color("42")
	ColorWarning = lipgloss.Color("214")
	ColorDanger  = lipgloss.Color("196")
	ColorMuted   = lipgloss.Color("241")
)

var (
	StatusStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	CommandStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	DeniedStyle = lipgloss.NewStyle().
			Foreground(ColorDanger)

	ConsentBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2)

	SelectedOptionStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true)

	HelpStyle = lipgloss.NewStyle().Faint(true)
)
