// Package model holds the conversation types shared between the agent
// loop, the tool dispatcher, and the provider layer.
package model

// Role identifies the author of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message represents a single message in the conversation history.
type Message struct {
	Role    Role
	Content string

	// For assistant messages that request tool execution
	ToolCalls []ToolCall

	// Set only for RoleTool messages; matches the answered ToolCall.ID
	ToolCallID string

	// Set only for RoleTool messages; the name of the tool that produced
	// this result (providers need it to frame function responses)
	ToolName string
}

// ToolCall represents a structured tool invocation requested by the model.
type ToolCall struct {
	ID   string
	Name string
	Args map[string]any
}

// ResultOutcome classifies a tool result.
type ResultOutcome string

const (
	OutcomeSuccess ResultOutcome = "success"
	OutcomeDenied  ResultOutcome = "denied"
	OutcomeError   ResultOutcome = "error"
)

// ToolResult is the answer to exactly one ToolCall.
type ToolResult struct {
	ToolCallID string
	Name       string
	Content    string
	Outcome    ResultOutcome
}

// Message converts the result into the history message the model sees.
func (r ToolResult) Message() Message {
	return Message{
		Role:       RoleTool,
		Content:    r.Content,
		ToolCallID: r.ToolCallID,
		ToolName:   r.Name,
	}
}
