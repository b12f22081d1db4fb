// Package tools defines the tool capability contract shared by the tool
// registry and the reasoning loop: the Tool interface, the textual
// ToolResult every execution produces, and the session State handed to
// each tool.
package tools

import (
	"context"
	"fmt"

	"github.com/invopop/jsonschema"
	"go.opentelemetry.io/otel/attribute"
)

// Tool is a single capability offered to the model. Implementations must
// communicate every failure through the returned ToolResult; Execute never
// panics and never returns an error value.
type Tool interface {
	GenerateSchema() *jsonschema.Schema
	Name() string
	Description() string
	ValidateInput(state State, parameters string) error
	Execute(ctx context.Context, state State, parameters string) ToolResult
	TracingKVs(parameters string) ([]attribute.KeyValue, error)
}

// ToolResult carries the textual outcome of a tool execution. Result and
// Error are mutually exclusive in practice; Error set means the call failed.
type ToolResult struct {
	Result string `json:"result"`
	Error  string `json:"error"`
}

// IsError reports whether the execution failed.
func (t ToolResult) IsError() bool {
	return t.Error != ""
}

// Content returns the text relayed to the model as the tool outcome.
func (t ToolResult) Content() string {
	if t.Error != "" {
		return t.Error
	}
	return t.Result
}

// String renders the result for console display with tagged sections.
func (t ToolResult) String() string {
	out := ""
	if t.Error != "" {
		out = fmt.Sprintf(`<error>
%s
</error>
`, t.Error)
	}
	if t.Result != "" {
		out += fmt.Sprintf(`<result>
%s
</result>
`, t.Result)
	}
	return out
}

// State is the per-session environment tools execute against.
type State interface {
	// SessionID identifies the agent session for logging and tracing.
	SessionID() string
	// WorkingRoot is the directory file-path arguments resolve against.
	WorkingRoot() string
	// ResolvePath resolves a tool-supplied path against the working root,
	// normalizing dot segments. Absolute paths pass through cleaned.
	ResolvePath(path string) string
}
