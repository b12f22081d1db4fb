package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAssistantText(t *testing.T) {
	assert.True(t, Message{Role: RoleAssistant, Content: "done"}.IsAssistantText())
	assert.True(t, Message{Role: RoleAssistant}.IsAssistantText(), "empty assistant content still ends a round")
	assert.False(t, Message{Role: RoleUser, Content: "hi"}.IsAssistantText())
	assert.False(t, Message{Role: RoleTool, Content: "out"}.IsAssistantText())

	withCalls := Message{
		Role:      RoleAssistant,
		ToolCalls: []ToolCall{{ID: "call_1", Name: "read-file", Arguments: json.RawMessage(`"{}"`)}},
	}
	assert.False(t, withCalls.IsAssistantText())
}

func TestNewToolMessage(t *testing.T) {
	msg := NewToolMessage("call_1", "read-file", "File: a.txt\n\nhi")

	assert.Equal(t, RoleTool, msg.Role)
	assert.Equal(t, "call_1", msg.ToolCallID)
	assert.Equal(t, "read-file", msg.ToolName)
	assert.Equal(t, "File: a.txt\n\nhi", msg.Content)
}
