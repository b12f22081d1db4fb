package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/skillet-ai/skillet/pkg/osutil"
	tooltypes "github.com/skillet-ai/skillet/pkg/types/tools"
)

// DefaultCommandTimeoutSeconds bounds the wall-clock duration of one
// execute-command invocation.
const DefaultCommandTimeoutSeconds = 60

// ExecuteCommandTool runs a shell command in the session's working root
// and reports captured stdout, stderr, and the exit status. A command
// that outlives the timeout is killed and reported as timed out; the model
// decides whether to retry.
type ExecuteCommandTool struct {
	timeoutSecs int
}

// ExecuteCommandInput is the parameter contract for execute-command.
type ExecuteCommandInput struct {
	Command string `json:"command" jsonschema:"description=The bash command to execute"`
}

func newExecuteCommandTool(timeoutSecs int) *ExecuteCommandTool {
	if timeoutSecs <= 0 {
		timeoutSecs = DefaultCommandTimeoutSeconds
	}
	return &ExecuteCommandTool{timeoutSecs: timeoutSecs}
}

func (t *ExecuteCommandTool) Name() string {
	return "execute-command"
}

func (t *ExecuteCommandTool) Description() string {
	return "Execute a bash command and return the output. Use for running scripts, python commands, etc."
}

func (t *ExecuteCommandTool) GenerateSchema() *jsonschema.Schema {
	return GenerateSchema[ExecuteCommandInput]()
}

func (t *ExecuteCommandTool) ValidateInput(_ tooltypes.State, parameters string) error {
	var input ExecuteCommandInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return errors.Wrap(err, "invalid input")
	}
	if input.Command == "" {
		return errors.New("command is required")
	}
	return nil
}

func (t *ExecuteCommandTool) TracingKVs(parameters string) ([]attribute.KeyValue, error) {
	var input ExecuteCommandInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return nil, err
	}
	return []attribute.KeyValue{
		attribute.String("command", input.Command),
	}, nil
}

func (t *ExecuteCommandTool) Execute(ctx context.Context, state tooltypes.State, parameters string) tooltypes.ToolResult {
	var input ExecuteCommandInput
	if err := json.Unmarshal([]byte(parameters), &input); err != nil {
		return tooltypes.ToolResult{Error: fmt.Sprintf("Error executing %s: %v", t.Name(), err)}
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(t.timeoutSecs)*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "bash", "-c", input.Command)
	cmd.Dir = state.WorkingRoot()

	// Run in its own process group so a timeout kills spawned children too.
	osutil.SetProcessGroup(cmd)
	osutil.SetProcessGroupKill(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if ctx.Err() == context.DeadlineExceeded {
		return tooltypes.ToolResult{
			Error: fmt.Sprintf("Error: Command timed out (%d second limit)", t.timeoutSecs),
		}
	}

	returnCode := 0
	if err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			return tooltypes.ToolResult{Error: fmt.Sprintf("Error executing command: %v", err)}
		}
		returnCode = exitErr.ExitCode()
	}

	var sections []string
	if stdout.Len() > 0 {
		sections = append(sections, fmt.Sprintf("STDOUT:\n%s", stdout.String()))
	}
	if stderr.Len() > 0 {
		sections = append(sections, fmt.Sprintf("STDERR:\n%s", stderr.String()))
	}

	if len(sections) == 0 {
		return tooltypes.ToolResult{
			Result: fmt.Sprintf("Command executed successfully (no output)\nReturn code: %d", returnCode),
		}
	}

	sections = append(sections, fmt.Sprintf("\nReturn code: %d", returnCode))
	return tooltypes.ToolResult{Result: strings.Join(sections, "\n\n")}
}
