package tools

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteCommandTool_Name(t *testing.T) {
	tool := newExecuteCommandTool(0)
	assert.Equal(t, "execute-command", tool.Name())
	assert.Equal(t, DefaultCommandTimeoutSeconds, tool.timeoutSecs)
}

func TestExecuteCommandTool_ValidateInput(t *testing.T) {
	tool := newExecuteCommandTool(0)
	state := NewBasicState(WithWorkingRoot(t.TempDir()))

	assert.NoError(t, tool.ValidateInput(state, `{"command": "echo hi"}`))
	assert.Error(t, tool.ValidateInput(state, `{}`))
}

func TestExecuteCommandTool_Execute(t *testing.T) {
	tmpDir := t.TempDir()
	tool := newExecuteCommandTool(0)
	state := NewBasicState(WithWorkingRoot(tmpDir))
	ctx := context.Background()

	t.Run("stdout capture", func(t *testing.T) {
		result := tool.Execute(ctx, state, `{"command": "echo hi"}`)
		require.False(t, result.IsError())
		assert.Equal(t, "STDOUT:\nhi\n\n\n\nReturn code: 0", result.Result)
	})

	t.Run("stderr capture", func(t *testing.T) {
		result := tool.Execute(ctx, state, `{"command": "echo oops 1>&2"}`)
		require.False(t, result.IsError())
		assert.Equal(t, "STDERR:\noops\n\n\n\nReturn code: 0", result.Result)
	})

	t.Run("both streams", func(t *testing.T) {
		result := tool.Execute(ctx, state, `{"command": "echo out; echo err 1>&2"}`)
		require.False(t, result.IsError())
		assert.Contains(t, result.Result, "STDOUT:\nout\n")
		assert.Contains(t, result.Result, "STDERR:\nerr\n")
		assert.Contains(t, result.Result, "Return code: 0")
	})

	t.Run("no output", func(t *testing.T) {
		result := tool.Execute(ctx, state, `{"command": "true"}`)
		require.False(t, result.IsError())
		assert.Equal(t, "Command executed successfully (no output)\nReturn code: 0", result.Result)
	})

	t.Run("non-zero exit", func(t *testing.T) {
		result := tool.Execute(ctx, state, `{"command": "echo boom 1>&2; exit 2"}`)
		require.False(t, result.IsError())
		assert.Contains(t, result.Result, "STDERR:\nboom\n")
		assert.Contains(t, result.Result, "Return code: 2")
	})

	t.Run("non-zero exit without output", func(t *testing.T) {
		result := tool.Execute(ctx, state, `{"command": "exit 3"}`)
		require.False(t, result.IsError())
		assert.Equal(t, "Command executed successfully (no output)\nReturn code: 3", result.Result)
	})

	t.Run("runs in the working root", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "marker.txt"), []byte("x"), 0o644))

		result := tool.Execute(ctx, state, `{"command": "ls"}`)
		require.False(t, result.IsError())
		assert.Contains(t, result.Result, "marker.txt")
	})
}

func TestExecuteCommandTool_Timeout(t *testing.T) {
	tmpDir := t.TempDir()
	tool := newExecuteCommandTool(1)
	state := NewBasicState(WithWorkingRoot(tmpDir))

	result := tool.Execute(context.Background(), state, `{"command": "sleep 5"}`)
	require.True(t, result.IsError())
	assert.Equal(t, "Error: Command timed out (1 second limit)", result.Error)
}

func TestRegistryCommandTimeoutOption(t *testing.T) {
	registry := NewRegistry(WithCommandTimeout(7))
	tool, ok := registry.Get("execute-command")
	require.True(t, ok)
	assert.Equal(t, 7, tool.(*ExecuteCommandTool).timeoutSecs)
}
