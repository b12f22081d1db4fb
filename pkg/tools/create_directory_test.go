package tools

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDirectoryTool_Name(t *testing.T) {
	tool := &CreateDirectoryTool{}
	assert.Equal(t, "create-directory", tool.Name())
}

func TestCreateDirectoryTool_Execute(t *testing.T) {
	tmpDir := t.TempDir()
	tool := &CreateDirectoryTool{}
	state := NewBasicState(WithWorkingRoot(tmpDir))
	ctx := context.Background()

	t.Run("creates nested directories", func(t *testing.T) {
		result := tool.Execute(ctx, state, `{"path": "a/b/c"}`)
		require.False(t, result.IsError())
		assert.Equal(t, "Successfully created directory: a/b/c", result.Result)

		info, err := os.Stat(filepath.Join(tmpDir, "a", "b", "c"))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("existing directory is fine", func(t *testing.T) {
		result := tool.Execute(ctx, state, `{"path": "a/b/c"}`)
		require.False(t, result.IsError())
		assert.Equal(t, "Successfully created directory: a/b/c", result.Result)
	})

	t.Run("failure is a textual error", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "occupied"), []byte("x"), 0o644))

		result := tool.Execute(ctx, state, `{"path": "occupied/child"}`)
		require.True(t, result.IsError())
		assert.Contains(t, result.Error, "Error creating directory:")
	})
}
