package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryBuiltins(t *testing.T) {
	registry := NewRegistry()

	names := make([]string, 0)
	for _, tool := range registry.Tools() {
		names = append(names, tool.Name())
	}
	assert.Equal(t, []string{"read-file", "write-file", "list-files", "execute-command", "create-directory"}, names)
}

func TestRegistryGet(t *testing.T) {
	registry := NewRegistry()

	tool, ok := registry.Get("read-file")
	require.True(t, ok)
	assert.Equal(t, "read-file", tool.Name())

	_, ok = registry.Get("nope")
	assert.False(t, ok)
}

func TestRegistryRunToolUnknownName(t *testing.T) {
	registry := NewRegistry()
	state := NewBasicState(WithWorkingRoot(t.TempDir()))

	result := registry.RunTool(context.Background(), state, "foo", "{}")
	require.True(t, result.IsError())
	assert.Equal(t, "Error: Unknown tool 'foo'", result.Error)
}

func TestRunToolValidationFailure(t *testing.T) {
	registry := NewRegistry()
	state := NewBasicState(WithWorkingRoot(t.TempDir()))

	result := registry.RunTool(context.Background(), state, "read-file", "{}")
	require.True(t, result.IsError())
	assert.Equal(t, "Error executing read-file: path is required", result.Error)
}

func TestGenerateSchema(t *testing.T) {
	schema := GenerateSchema[ReadFileInput]()
	require.NotNil(t, schema)
	assert.Equal(t, "https://github.com/skillet-ai/skillet/pkg/tools/read-file-input", string(schema.ID))
}

func TestToolSchemasNotNil(t *testing.T) {
	registry := NewRegistry()
	for _, tool := range registry.Tools() {
		assert.NotNil(t, tool.GenerateSchema(), "schema for %s", tool.Name())
		assert.NotEmpty(t, tool.Description(), "description for %s", tool.Name())
	}
}
