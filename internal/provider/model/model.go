// Package model defines the provider-facing types: the generate
// request/response pair and the tool definition schema.
package model

import (
	agentmodel "github.com/aide-cli/aide/internal/agent/model"
)

// GenerateRequest encapsulates all parameters for a generation request.
type GenerateRequest struct {
	// System is the system instruction for this session
	System string

	// History contains the conversation history
	History []agentmodel.Message

	// Tools contains tool definitions for native tool calling
	Tools []ToolDefinition
}

// GenerateResponse contains the model's response. Exactly one of Text and
// ToolCalls is meaningful: a response with tool calls carries the calls,
// otherwise it is a plain text turn.
type GenerateResponse struct {
	Text      string
	ToolCalls []agentmodel.ToolCall
	Usage     Usage
}

// HasToolCalls reports whether the model requested tool execution.
func (r *GenerateResponse) HasToolCalls() bool {
	return len(r.ToolCalls) > 0
}

// Usage contains token accounting for one generation.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// ToolDefinition defines a tool that the model can invoke.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  *ParameterSchema // nil means no parameters
}

// ParameterSchema maps directly to standard JSON Schema.
type ParameterSchema struct {
	Type       string                    `json:"type"`
	Properties map[string]PropertySchema `json:"properties"`
	Required   []string                  `json:"required,omitempty"`
}

// PropertySchema defines a single parameter property.
type PropertySchema struct {
	Type        string          `json:"type"`
	Description string          `json:"description,omitempty"`
	Enum        []string        `json:"enum,omitempty"`
	Items       *PropertySchema `json:"items,omitempty"`
}
