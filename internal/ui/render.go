package ui

import (
	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders assistant markdown for the terminal.
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
}

// NewMarkdownRenderer creates a renderer with automatic light/dark style
// detection. A construction failure degrades to pass-through rendering.
func NewMarkdownRenderer(wordWrap int) *MarkdownRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return &MarkdownRenderer{}
	}
	return &MarkdownRenderer{renderer: r}
}

// Render returns the terminal-formatted markdown, or the input unchanged
// when rendering is unavailable.
func (m *MarkdownRenderer) Render(markdown string) string {
	if m.renderer == nil {
		return markdown
	}
	out, err := m.renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return out
}
