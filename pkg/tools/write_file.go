package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	tooltypes "github.com/skillet-ai/skillet/pkg/types/tools"
)

// WriteFileTool writes content to a file, creating parent directories as
// needed.
type WriteFileTool struct{}

// WriteFileInput is the parameter contract for write-file.
type WriteFileInput struct {
	Path    string `json:"path" jsonschema:"description=Path to the file to write (relative or absolute)"`
	Content string `json:"content" jsonschema:"description=Content to write to the file"`
}

func (t *WriteFileTool) Name() string {
	return "write-file"
}

func (t *WriteFileTool) Description() string {
	return "Write content to a file. Creates the file if it doesn't exist, overwrites if it does."
}

func (t *WriteFileTool) GenerateSchema() *jsonschema.Schema {
	return GenerateSchema[WriteFileInput]()
}

func (t *WriteFileTool) ValidateInput(_ tooltypes.State, parameters string) error {
	var input WriteFileInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return errors.Wrap(err, "invalid input")
	}
	if input.Path == "" {
		return errors.New("path is required")
	}
	return nil
}

func (t *WriteFileTool) TracingKVs(parameters string) ([]attribute.KeyValue, error) {
	var input WriteFileInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return nil, err
	}
	return []attribute.KeyValue{
		attribute.String("path", input.Path),
		attribute.Int("content_length", len(input.Content)),
	}, nil
}

func (t *WriteFileTool) Execute(_ context.Context, state tooltypes.State, parameters string) tooltypes.ToolResult {
	var input WriteFileInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return tooltypes.ToolResult{Error: fmt.Sprintf("Error executing %s: %v", t.Name(), err)}
	}

	resolved := state.ResolvePath(input.Path)

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return tooltypes.ToolResult{Error: fmt.Sprintf("Error executing %s: %v", t.Name(), err)}
	}

	if err := os.WriteFile(resolved, []byte(input.Content), 0o644); err != nil {
		return tooltypes.ToolResult{Error: fmt.Sprintf("Error writing file: %v", err)}
	}

	return tooltypes.ToolResult{
		Result: fmt.Sprintf("Successfully wrote to: %s", input.Path),
	}
}
