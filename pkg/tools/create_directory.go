package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	tooltypes "github.com/skillet-ai/skillet/pkg/types/tools"
)

// CreateDirectoryTool creates a directory including missing parents.
type CreateDirectoryTool struct{}

// CreateDirectoryInput is the parameter contract for create-directory.
type CreateDirectoryInput struct {
	Path string `json:"path" jsonschema:"description=Path to the directory to create (relative or absolute)"`
}

func (t *CreateDirectoryTool) Name() string {
	return "create-directory"
}

func (t *CreateDirectoryTool) Description() string {
	return "Create a directory. Creates parent directories if needed."
}

func (t *CreateDirectoryTool) GenerateSchema() *jsonschema.Schema {
	return GenerateSchema[CreateDirectoryInput]()
}

func (t *CreateDirectoryTool) ValidateInput(_ tooltypes.State, parameters string) error {
	var input CreateDirectoryInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return errors.Wrap(err, "invalid input")
	}
	if input.Path == "" {
		return errors.New("path is required")
	}
	return nil
}

func (t *CreateDirectoryTool) TracingKVs(parameters string) ([]attribute.KeyValue, error) {
	var input CreateDirectoryInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return nil, err
	}
	return []attribute.KeyValue{
		attribute.String("path", input.Path),
	}, nil
}

func (t *CreateDirectoryTool) Execute(_ context.Context, state tooltypes.State, parameters string) tooltypes.ToolResult {
	var input CreateDirectoryInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return tooltypes.ToolResult{Error: fmt.Sprintf("Error executing %s: %v", t.Name(), err)}
	}

	resolved := state.ResolvePath(input.Path)

	if err := os.MkdirAll(resolved, 0o755); err != nil {
		return tooltypes.ToolResult{Error: fmt.Sprintf("Error creating directory: %v", err)}
	}

	return tooltypes.ToolResult{
		Result: fmt.Sprintf("Successfully created directory: %s", input.Path),
	}
}
