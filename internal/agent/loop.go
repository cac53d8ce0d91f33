// Package agent runs the model/tool conversation loop. Each iteration
// sends the history to the provider; tool calls are dispatched and their
// results fed back, text turns end the run. The iteration ceiling bounds
// every run.
package agent

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aide-cli/aide/internal/agent/model"
	provider "github.com/aide-cli/aide/internal/provider/model"
)

// Outcome is the terminal state of one run.
type Outcome string

const (
	// OutcomeCompleted means the model produced a final text answer.
	OutcomeCompleted Outcome = "completed"
	// OutcomeAborted means the iteration ceiling was reached first.
	OutcomeAborted Outcome = "aborted"
	// OutcomeFailed means the provider became unusable mid-run.
	OutcomeFailed Outcome = "failed"
)

// abortNote is appended to history when a run hits the iteration ceiling,
// so a resumed conversation can see why it stopped.
const abortNote = "The session was stopped because the iteration limit was reached before the task finished."

// Dispatcher executes a single tool call. Every call yields exactly one
// result; failures are folded into the result, never returned.
type Dispatcher interface {
	Dispatch(ctx context.Context, call model.ToolCall) model.ToolResult
}

// UI receives user-visible events from the loop.
type UI interface {
	ShowStatus(stage, detail string)
	ShowAssistant(text string)
}

// NoopUI discards all events.
type NoopUI struct{}

func (NoopUI) ShowStatus(string, string) {}
func (NoopUI) ShowAssistant(string)      {}

// RunResult summarizes a finished run. Iterations counts tool-executing
// cycles; a run answered with text on the first turn reports zero.
type RunResult struct {
	Outcome    Outcome
	FinalText  string
	Iterations int
	Usage      provider.Usage
}

// Config carries the loop's tunables.
type Config struct {
	// System is the system instruction sent on every generation.
	System string
	// MaxIterations bounds the number of model turns per run.
	MaxIterations int
	// Tools are the definitions advertised to the model.
	Tools []provider.ToolDefinition
	// UI receives status and assistant output; nil means discard.
	UI UI
	// Logger defaults to slog.Default when nil.
	Logger *slog.Logger
}

// Loop drives one conversation. Not safe for concurrent use.
type Loop struct {
	provider   provider.Provider
	dispatcher Dispatcher
	cfg        Config
	history    []model.Message
}

// New creates a Loop. Panics if provider or dispatcher is nil.
func New(p provider.Provider, dispatcher Dispatcher, cfg Config) *Loop {
	if p == nil {
		panic("agent: provider is required")
	}
	if dispatcher == nil {
		panic("agent: dispatcher is required")
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = 20
	}
	if cfg.UI == nil {
		cfg.UI = NoopUI{}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Loop{
		provider:   p,
		dispatcher: dispatcher,
		cfg:        cfg,
		history:    make([]model.Message, 0),
	}
}

// History returns a copy of the conversation so far.
func (l *Loop) History() []model.Message {
	out := make([]model.Message, len(l.history))
	copy(out, l.history)
	return out
}

// Run executes the loop for one goal. The returned error is non-nil only
// when the outcome is OutcomeFailed.
func (l *Loop) Run(ctx context.Context, goal string) (*RunResult, error) {
	l.history = append(l.history, model.Message{Role: model.RoleUser, Content: goal})

	result := &RunResult{}
	for {
		if err := ctx.Err(); err != nil {
			result.Outcome = OutcomeFailed
			return result, fmt.Errorf("run cancelled: %w", err)
		}

		l.cfg.UI.ShowStatus("thinking", "waiting for the model")
		resp, err := l.provider.Generate(ctx, &provider.GenerateRequest{
			System:  l.cfg.System,
			History: l.history,
			Tools:   l.cfg.Tools,
		})
		if err != nil {
			result.Outcome = OutcomeFailed
			return result, fmt.Errorf("model generation failed: %w", err)
		}

		result.Usage.PromptTokens += resp.Usage.PromptTokens
		result.Usage.CompletionTokens += resp.Usage.CompletionTokens
		result.Usage.TotalTokens += resp.Usage.TotalTokens

		if !resp.HasToolCalls() {
			l.history = append(l.history, model.Message{
				Role:    model.RoleAssistant,
				Content: resp.Text,
			})
			l.cfg.UI.ShowAssistant(resp.Text)
			result.Outcome = OutcomeCompleted
			result.FinalText = resp.Text
			return result, nil
		}

		l.history = append(l.history, model.Message{
			Role:      model.RoleAssistant,
			Content:   resp.Text,
			ToolCalls: resp.ToolCalls,
		})

		// Only tool-carrying turns count toward the ceiling: a final text
		// answer completes the run no matter how late it arrives.
		result.Iterations++
		if result.Iterations > l.cfg.MaxIterations {
			result.Iterations = l.cfg.MaxIterations
			result.Outcome = OutcomeAborted
			l.history = append(l.history, model.Message{Role: model.RoleSystem, Content: abortNote})
			l.cfg.Logger.Warn("iteration ceiling reached", "max", l.cfg.MaxIterations)
			return result, nil
		}

		// One result per issued call, appended in call order.
		for _, call := range resp.ToolCalls {
			l.cfg.UI.ShowStatus("executing", call.Name)
			toolResult := l.dispatcher.Dispatch(ctx, call)
			l.history = append(l.history, toolResult.Message())
		}
	}
}
