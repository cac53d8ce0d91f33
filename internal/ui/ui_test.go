package ui

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aide-cli/aide/internal/dispatch"
)

func keyPress(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func TestConsentModelDefaultsToDeny(t *testing.T) {
	m := newConsentModel("ls -la")

	updated, _ := m.Update(keyPress("enter"))

	final := updated.(consentModel)
	assert.True(t, final.done)
	assert.Equal(t, dispatch.DecisionDeny, final.decision)
}

func TestConsentModelNavigateAndSelect(t *testing.T) {
	m := newConsentModel("go test ./...")

	var model tea.Model = m
	for _, key := range []string{"down", "down", "enter"} {
		model, _ = model.(consentModel).Update(keyPress(key))
	}

	final := model.(consentModel)
	assert.True(t, final.done)
	assert.Equal(t, dispatch.DecisionSession, final.decision)
}

func TestConsentModelEscapeDenies(t *testing.T) {
	m := newConsentModel("make install")

	var model tea.Model = m
	for _, key := range []string{"down", "down", "down", "esc"} {
		model, _ = model.(consentModel).Update(keyPress(key))
	}

	final := model.(consentModel)
	assert.True(t, final.done)
	assert.Equal(t, dispatch.DecisionDeny, final.decision)
}

func TestConsentModelCursorStaysInBounds(t *testing.T) {
	m := newConsentModel("ls")

	var model tea.Model = m
	for range 10 {
		model, _ = model.(consentModel).Update(keyPress("down"))
	}
	model, _ = model.(consentModel).Update(keyPress("enter"))

	final := model.(consentModel)
	assert.Equal(t, dispatch.DecisionPermanent, final.decision)
}

func TestConsentModelViewShowsCommand(t *testing.T) {
	m := newConsentModel("ls -la /tmp")

	view := m.View()

	assert.Contains(t, view, "ls -la /tmp")
	assert.Contains(t, view, "Deny")
	assert.Contains(t, view, "Always allow")
}

func TestPromptModelSubmitsTrimmedValue(t *testing.T) {
	m := newPromptModel("goal")
	m.input.SetValue("  fix the bug  ")

	updated, _ := m.Update(keyPress("enter"))

	final := updated.(promptModel)
	assert.True(t, final.submitted)
	assert.Equal(t, "fix the bug", strings.TrimSpace(final.input.Value()))
}

func TestPromptModelRejectsEmptySubmit(t *testing.T) {
	m := newPromptModel("goal")

	updated, _ := m.Update(keyPress("enter"))

	final := updated.(promptModel)
	assert.False(t, final.submitted)
}

func TestPromptModelEscapeCancels(t *testing.T) {
	m := newPromptModel("goal")

	updated, _ := m.Update(keyPress("esc"))

	final := updated.(promptModel)
	assert.True(t, final.cancelled)
}

func TestConsoleShowAssistant(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsole(&buf, nil)

	console.ShowAssistant("hello **world**")

	assert.Contains(t, buf.String(), "hello **world**")
}

func TestConsoleShowAssistantSkipsEmpty(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsole(&buf, nil)

	console.ShowAssistant("")

	assert.Empty(t, buf.String())
}

func TestConsoleShowStatus(t *testing.T) {
	var buf bytes.Buffer
	console := NewConsole(&buf, nil)

	console.ShowStatus("thinking", "waiting for the model")

	assert.Contains(t, buf.String(), "thinking")
	assert.Contains(t, buf.String(), "waiting for the model")
}

func TestMarkdownRendererFallsBackWithoutRenderer(t *testing.T) {
	r := &MarkdownRenderer{}

	assert.Equal(t, "# raw", r.Render("# raw"))
}

func TestMarkdownRendererRenders(t *testing.T) {
	r := NewMarkdownRenderer(80)

	out := r.Render("plain text")

	require.NotEmpty(t, out)
	assert.Contains(t, out, "plain text")
}
