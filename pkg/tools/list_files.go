package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	tooltypes "github.com/skillet-ai/skillet/pkg/types/tools"
)

// ListFilesTool lists the entries of a directory with per-file sizes.
type ListFilesTool struct{}

// ListFilesInput is the parameter contract for list-files.
type ListFilesInput struct {
	Path string `json:"path" jsonschema:"description=Path to the directory to list (relative or absolute)"`
}

func (t *ListFilesTool) Name() string {
	return "list-files"
}

func (t *ListFilesTool) Description() string {
	return "List files and directories in a directory."
}

func (t *ListFilesTool) GenerateSchema() *jsonschema.Schema {
	return GenerateSchema[ListFilesInput]()
}

func (t *ListFilesTool) ValidateInput(_ tooltypes.State, parameters string) error {
	var input ListFilesInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return errors.Wrap(err, "invalid input")
	}
	if input.Path == "" {
		return errors.New("path is required")
	}
	return nil
}

func (t *ListFilesTool) TracingKVs(parameters string) ([]attribute.KeyValue, error) {
	var input ListFilesInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return nil, err
	}
	return []attribute.KeyValue{
		attribute.String("path", input.Path),
	}, nil
}

func (t *ListFilesTool) Execute(_ context.Context, state tooltypes.State, parameters string) tooltypes.ToolResult {
	var input ListFilesInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return tooltypes.ToolResult{Error: fmt.Sprintf("Error executing %s: %v", t.Name(), err)}
	}

	resolved := state.ResolvePath(input.Path)

	info, err := os.Stat(resolved)
	if os.IsNotExist(err) {
		return tooltypes.ToolResult{Error: fmt.Sprintf("Error: Directory not found: %s", input.Path)}
	}
	if err != nil {
		return tooltypes.ToolResult{Error: fmt.Sprintf("Error executing %s: %v", t.Name(), err)}
	}
	if !info.IsDir() {
		return tooltypes.ToolResult{Error: fmt.Sprintf("Error: Not a directory: %s", input.Path)}
	}

	entries, err := os.ReadDir(resolved)
	if err != nil {
		return tooltypes.ToolResult{Error: fmt.Sprintf("Error listing directory: %v", err)}
	}

	items := make([]string, 0, len(entries))
	for _, entry := range entries {
		// Stat rather than the dirent so symlinks report their target.
		entryInfo, err := os.Stat(filepath.Join(resolved, entry.Name()))
		if err != nil {
			return tooltypes.ToolResult{Error: fmt.Sprintf("Error listing directory: %v", err)}
		}
		if entryInfo.IsDir() {
			items = append(items, fmt.Sprintf("[DIR]  %s/", entry.Name()))
		} else {
			items = append(items, fmt.Sprintf("[FILE] %s (%d bytes)", entry.Name(), entryInfo.Size()))
		}
	}

	if len(items) == 0 {
		return tooltypes.ToolResult{Result: fmt.Sprintf("Directory: %s\n\n(empty)", input.Path)}
	}

	return tooltypes.ToolResult{
		Result: fmt.Sprintf("Directory: %s\n\n%s", input.Path, strings.Join(items, "\n")),
	}
}
