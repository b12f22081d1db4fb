// Package tools provides the built-in tool execution framework: the tool
// registry, input validation, and execution with tracing. Every failure is
// rendered into the textual result so the model can read it and
// self-correct; nothing below the registry raises.
package tools

import (
	"context"
	"fmt"

	"github.com/invopop/jsonschema"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/skillet-ai/skillet/pkg/logger"
	"github.com/skillet-ai/skillet/pkg/telemetry"
	tooltypes "github.com/skillet-ai/skillet/pkg/types/tools"
)

var tracer = telemetry.Tracer("skillet.tools")

// GenerateSchema reflects a JSON schema from an input struct type.
func GenerateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T

	return reflector.Reflect(v)
}

// Registry maps tool names to implementations, preserving registration
// order for the schemas offered to the model.
type Registry struct {
	order              []string
	tools              map[string]tooltypes.Tool
	commandTimeoutSecs int
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithCommandTimeout overrides the execute-command wall-clock limit, in
// seconds. The default is DefaultCommandTimeoutSeconds.
func WithCommandTimeout(seconds int) RegistryOption {
	return func(r *Registry) {
		r.commandTimeoutSecs = seconds
	}
}

// NewRegistry builds a registry with the five built-in environment tools.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{tools: make(map[string]tooltypes.Tool)}
	for _, opt := range opts {
		opt(r)
	}

	r.Register(&ReadFileTool{})
	r.Register(&WriteFileTool{})
	r.Register(&ListFilesTool{})
	r.Register(newExecuteCommandTool(r.commandTimeoutSecs))
	r.Register(&CreateDirectoryTool{})
	return r
}

// Register adds a tool. A tool registered twice keeps its first position.
func (r *Registry) Register(tool tooltypes.Tool) {
	name := tool.Name()
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = tool
}

// Get returns the tool registered under name.
func (r *Registry) Get(name string) (tooltypes.Tool, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

// Tools returns all registered tools in registration order.
func (r *Registry) Tools() []tooltypes.Tool {
	out := make([]tooltypes.Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// RunTool validates and executes one tool call. Unknown names and
// validation failures become textual error results, not raised faults.
func (r *Registry) RunTool(ctx context.Context, state tooltypes.State, toolName string, parameters string) tooltypes.ToolResult {
	tool, ok := r.Get(toolName)
	if !ok {
		return tooltypes.ToolResult{
			Error: fmt.Sprintf("Error: Unknown tool '%s'", toolName),
		}
	}
	return RunTool(ctx, state, tool, parameters)
}

// RunTool executes a single tool with tracing. Validation failures are
// reported the same way handler faults are, so the model sees one
// consistent shape for "this call did not work".
func RunTool(ctx context.Context, state tooltypes.State, tool tooltypes.Tool, parameters string) tooltypes.ToolResult {
	kvs, err := tool.TracingKVs(parameters)
	if err != nil {
		logger.G(ctx).WithError(err).Error("failed to get tracing kvs")
	}

	ctx, span := tracer.Start(
		ctx,
		fmt.Sprintf("tools.run_tool.%s", tool.Name()),
		trace.WithAttributes(kvs...),
	)
	defer span.End()

	if err := tool.ValidateInput(state, parameters); err != nil {
		result := tooltypes.ToolResult{
			Error: fmt.Sprintf("Error executing %s: %v", tool.Name(), err),
		}
		span.SetStatus(codes.Error, result.Error)
		return result
	}

	result := tool.Execute(ctx, state, parameters)

	if result.IsError() {
		span.SetStatus(codes.Error, result.Error)
	} else {
		span.SetStatus(codes.Ok, "")
	}

	return result
}
