package ui

import (
	"fmt"
	"io"
)

// Console writes agent events to a terminal stream.
type Console struct {
	out      io.Writer
	renderer *MarkdownRenderer
}

// NewConsole creates a Console writing to out. A nil renderer disables
// markdown formatting.
func NewConsole(out io.Writer, renderer *MarkdownRenderer) *Console {
	return &Console{out: out, renderer: renderer}
}

// ShowStatus prints an ephemeral status line.
func (c *Console) ShowStatus(stage, detail string) {
	fmt.Fprintln(c.out, StatusStyle.Render(fmt.Sprintf("[%s] %s", stage, detail)))
}

// ShowAssistant prints an assistant text turn, rendered as markdown when a
// renderer is configured.
func (c *Console) ShowAssistant(text string) {
	if text == "" {
		return
	}
	if c.renderer != nil {
		text = c.renderer.Render(text)
	}
	fmt.Fprintln(c.out, text)
}
