package ui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aide-cli/aide/internal/dispatch"
)

var consentOptions = []struct {
	label    string
	decision dispatch.Decision
}{
	{"Deny", dispatch.DecisionDeny},
	{"Allow once", dispatch.DecisionOnce},
	{"Allow for this session", dispatch.DecisionSession},
	{"Always allow this command", dispatch.DecisionPermanent},
}

// consentModel is the Bubble Tea model for one consent prompt.
type consentModel struct {
	command  string
	index    int
	decision dispatch.Decision
	done     bool
}

func newConsentModel(command string) consentModel {
	return consentModel{command: command, decision: dispatch.DecisionDeny}
}

func (m consentModel) Init() tea.Cmd {
	return nil
}

func (m consentModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if m.index > 0 {
			m.index--
		}
	case "down", "j":
		if m.index < len(consentOptions)-1 {
			m.index++
		}
	case "enter":
		m.decision = consentOptions[m.index].decision
		m.done = true
		return m, tea.Quit
	case "esc", "ctrl+c", "q":
		m.decision = dispatch.DecisionDeny
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m consentModel) View() string {
	if m.done {
		return ""
	}

	var lines []string
	lines = append(lines, "The agent wants to run:")
	lines = append(lines, "")
	lines = append(lines, CommandStyle.Render(m.command))
	lines = append(lines, "")

	for i, opt := range consentOptions {
		if i == m.index {
			lines = append(lines, SelectedOptionStyle.Render(fmt.Sprintf("▸ %s", opt.label)))
		} else {
			lines = append(lines, fmt.Sprintf("  %s", opt.label))
		}
	}

	lines = append(lines, "")
	lines = append(lines, HelpStyle.Render("↑/↓: Navigate  Enter: Select  Esc: Deny"))

	return ConsentBoxStyle.Render(strings.Join(lines, "\n"))
}

// ConsentPrompt asks the user to approve a shell command through an
// interactive picker. It implements dispatch.Consenter.
type ConsentPrompt struct {
	// opts let tests redirect the program's input and output.
	opts []tea.ProgramOption
}

// NewConsentPrompt creates a prompt running on the process terminal.
func NewConsentPrompt(opts ...tea.ProgramOption) *ConsentPrompt {
	return &ConsentPrompt{opts: opts}
}

// RequestConsent blocks until the user picks an option or ctx is
// cancelled. Cancellation and prompt failures deny.
func (p *ConsentPrompt) RequestConsent(ctx context.Context, commandLine string) (dispatch.Decision, error) {
	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, p.opts...)
	program := tea.NewProgram(newConsentModel(commandLine), opts...)

	final, err := program.Run()
	if err != nil {
		return dispatch.DecisionDeny, fmt.Errorf("consent prompt: %w", err)
	}

	m, ok := final.(consentModel)
	if !ok {
		return dispatch.DecisionDeny, fmt.Errorf("consent prompt: unexpected model type %T", final)
	}
	return m.decision, nil
}
