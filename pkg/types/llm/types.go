// Package llm defines the provider-neutral conversation types shared by the
// model gateway and the reasoning loop.
package llm

import "encoding/json"

// Message roles as they appear on the chat-completions wire.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message represents a chat message. ToolCalls is set on assistant messages
// that request tool execution; ToolCallID and ToolName are set on tool
// result messages and correlate the result with the originating call.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	ToolName   string     `json:"name,omitempty"`
}

// ToolCall is a single tool invocation requested by the model. Arguments
// holds the verbatim wire value, which is usually a JSON string wrapping
// the real payload but can be any JSON value; the loop parses it per call
// and turns malformed input into a readable tool result.
type ToolCall struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// NewUserMessage builds a plain user message.
func NewUserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// NewToolMessage builds a tool result message correlated with a call.
func NewToolMessage(callID, toolName, content string) Message {
	return Message{
		Role:       RoleTool,
		Content:    content,
		ToolCallID: callID,
		ToolName:   toolName,
	}
}

// IsAssistantText reports whether the message is plain assistant text, the
// shape that ends a reasoning round.
func (m Message) IsAssistantText() bool {
	return m.Role == RoleAssistant && len(m.ToolCalls) == 0
}
