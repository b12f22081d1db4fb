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
	"github.com/skillet-ai/skillet/pkg/utils"
)

// ReadFileTool returns the content of a file, or size-only metadata when
// the content is not valid text.
type ReadFileTool struct{}

// ReadFileInput is the parameter contract for read-file.
type ReadFileInput struct {
	Path string `json:"path" jsonschema:"description=Path to the file to read (relative or absolute)"`
}

func (t *ReadFileTool) Name() string {
	return "read-file"
}

func (t *ReadFileTool) Description() string {
	return "Read contents of a file. Supports text and binary files."
}

func (t *ReadFileTool) GenerateSchema() *jsonschema.Schema {
	return GenerateSchema[ReadFileInput]()
}

func (t *ReadFileTool) ValidateInput(_ tooltypes.State, parameters string) error {
	var input ReadFileInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return errors.Wrap(err, "invalid input")
	}
	if input.Path == "" {
		return errors.New("path is required")
	}
	return nil
}

func (t *ReadFileTool) TracingKVs(parameters string) ([]attribute.KeyValue, error) {
	var input ReadFileInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return nil, err
	}
	return []attribute.KeyValue{
		attribute.String("path", input.Path),
	}, nil
}

func (t *ReadFileTool) Execute(_ context.Context, state tooltypes.State, parameters string) tooltypes.ToolResult {
	var input ReadFileInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return tooltypes.ToolResult{Error: fmt.Sprintf("Error executing %s: %v", t.Name(), err)}
	}

	resolved := state.ResolvePath(input.Path)

	info, err := os.Stat(resolved)
	if os.IsNotExist(err) {
		return tooltypes.ToolResult{Error: fmt.Sprintf("Error: File not found: %s", input.Path)}
	}
	if err != nil {
		return tooltypes.ToolResult{Error: fmt.Sprintf("Error executing %s: %v", t.Name(), err)}
	}
	if !info.Mode().IsRegular() {
		return tooltypes.ToolResult{Error: fmt.Sprintf("Error: Not a file: %s", input.Path)}
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return tooltypes.ToolResult{Error: fmt.Sprintf("Error executing %s: %v", t.Name(), err)}
	}

	if utils.IsBinaryContent(data) {
		return tooltypes.ToolResult{
			Result: fmt.Sprintf("File: %s\n\nBinary file (%d bytes). Cannot display contents.", input.Path, len(data)),
		}
	}

	return tooltypes.ToolResult{
		Result: fmt.Sprintf("File: %s\n\n%s", input.Path, string(data)),
	}
}
