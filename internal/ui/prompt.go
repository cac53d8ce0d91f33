package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrPromptCancelled is returned when the user abandons the goal prompt.
var ErrPromptCancelled = errors.New("prompt cancelled")

// promptModel reads a single line of free-form input.
type promptModel struct {
	input     textinput.Model
	submitted bool
	cancelled bool
}

func newPromptModel(placeholder string) promptModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 0
	ti.Width = 80
	return promptModel{input: ti}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			if strings.TrimSpace(m.input.Value()) != "" {
				m.submitted = true
				return m, tea.Quit
			}
			return m, nil
		case "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.submitted || m.cancelled {
		return ""
	}
	return fmt.Sprintf("%s\n%s\n", m.input.View(), HelpStyle.Render("Enter: Submit  Esc: Quit"))
}

// ReadGoal prompts interactively for the task description. Used when the
// command line did not carry one.
func ReadGoal(opts ...tea.ProgramOption) (string, error) {
	program := tea.NewProgram(newPromptModel("What should I do?"), opts...)

	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("goal prompt: %w", err)
	}

	m, ok := final.(promptModel)
	if !ok {
		return "", fmt.Errorf("goal prompt: unexpected model type %T", final)
	}
	if m.cancelled || !m.submitted {
		return "", ErrPromptCancelled
	}
	return strings.TrimSpace(m.input.Value()), nil
}
