// Package agent implements the bounded reasoning loop: per round it
// synthesizes the system prompt, offers the current tool surface to the
// model, executes whatever tool calls come back in request order, and stops
// on the first plain assistant reply or when the round budget runs out.
package agent

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/skillet-ai/skillet/pkg/logger"
	"github.com/skillet-ai/skillet/pkg/skills"
	"github.com/skillet-ai/skillet/pkg/sysprompt"
	"github.com/skillet-ai/skillet/pkg/telemetry"
	"github.com/skillet-ai/skillet/pkg/tools"
	llmtypes "github.com/skillet-ai/skillet/pkg/types/llm"
	tooltypes "github.com/skillet-ai/skillet/pkg/types/tools"
)

var tracer = telemetry.Tracer("skillet.agent")

// maxRoundsNotice is the placeholder reply appended when the round budget
// runs out while the transcript still ends in tool results.
const maxRoundsNotice = "Error: Max reasoning rounds reached"

// Gateway issues one model request per call and normalizes the reply into
// messages. Backend failures arrive as synthetic assistant messages rather
// than errors; a returned error means the loop should stop.
type Gateway interface {
	Send(ctx context.Context, systemPrompt string, conversation []llmtypes.Message, offered []tooltypes.Tool) ([]llmtypes.Message, error)
}

// Agent runs the reasoning loop for one session. It is not safe for
// concurrent use; the loop owns the activation set and tool state.
type Agent struct {
	gateway    Gateway
	registry   *tools.Registry
	catalog    *skills.Catalog
	active     *skills.ActivationSet
	skillTool  *tools.SkillTool
	state      tooltypes.State
	basePrompt string
	maxRounds  int
}

// Option configures an Agent.
type Option func(*Agent)

// WithCatalog attaches a skill catalog. Without one the activation tool is
// never offered and the system prompt carries no skill sections.
func WithCatalog(catalog *skills.Catalog) Option {
	return func(a *Agent) {
		a.catalog = catalog
	}
}

// WithBasePrompt overrides the persona line of the system prompt.
func WithBasePrompt(prompt string) Option {
	return func(a *Agent) {
		a.basePrompt = prompt
	}
}

// WithMaxRounds overrides the round budget. Values below one are ignored.
func WithMaxRounds(rounds int) Option {
	return func(a *Agent) {
		if rounds > 0 {
			a.maxRounds = rounds
		}
	}
}

// WithState overrides the tool execution state, which fixes the working
// root file-path arguments resolve against.
func WithState(state tooltypes.State) Option {
	return func(a *Agent) {
		a.state = state
	}
}

// WithRegistry overrides the tool registry.
func WithRegistry(registry *tools.Registry) Option {
	return func(a *Agent) {
		a.registry = registry
	}
}

// New builds an agent around a gateway. Defaults: the built-in tool
// registry, a fresh state rooted at the current directory, no catalog, and
// a round budget of llmtypes.DefaultMaxRounds.
func New(gateway Gateway, opts ...Option) *Agent {
	a := &Agent{
		gateway:   gateway,
		maxRounds: llmtypes.DefaultMaxRounds,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.registry == nil {
		a.registry = tools.NewRegistry()
	}
	if a.state == nil {
		a.state = tools.NewBasicState()
	}
	a.active = skills.NewActivationSet()
	if a.catalog != nil {
		a.skillTool = tools.NewSkillTool(a.catalog, a.active)
	}
	return a
}

// SessionID identifies this agent's session in logs and traces.
func (a *Agent) SessionID() string {
	return a.state.SessionID()
}

// ActivatedSkills returns the names of skills activated so far, in
// activation order.
func (a *Agent) ActivatedSkills() []string {
	return a.active.Names()
}

// ProcessMessage runs the reasoning loop over the given conversation and
// returns the final assistant message with the grown transcript. The
// conversation is not mutated; feed Result.Conversation back in to continue
// the same session. The only error conditions are context cancellation and
// gateway shutdown; everything else becomes conversational content.
func (a *Agent) ProcessMessage(ctx context.Context, conversation []llmtypes.Message) (*Result, error) {
	ctx, span := tracer.Start(ctx, "agent.process_message", trace.WithAttributes(
		attribute.String("session_id", a.SessionID()),
		attribute.Int("max_rounds", a.maxRounds),
	))
	defer span.End()

	messages := make([]llmtypes.Message, len(conversation))
	copy(messages, conversation)

	rounds := 0
	for rounds < a.maxRounds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rounds++

		logger.G(ctx).WithField("round", rounds).WithField("max_rounds", a.maxRounds).Debug("reasoning round")
		telemetry.AddEvent(ctx, "round_start", attribute.Int("round", rounds))

		systemPrompt := sysprompt.SystemPrompt(ctx, a.basePrompt, a.catalog, a.active)

		replies, err := a.gateway.Send(ctx, systemPrompt, messages, a.offeredTools())
		if err != nil {
			return nil, err
		}
		messages = append(messages, replies...)

		if len(messages) == 0 {
			continue
		}
		last := messages[len(messages)-1]

		if last.Role == llmtypes.RoleAssistant && len(last.ToolCalls) > 0 {
			messages = append(messages, a.executeToolCalls(ctx, last.ToolCalls)...)
			continue
		}

		if last.IsAssistantText() {
			return &Result{
				Outcome:      Final,
				Message:      last,
				Conversation: messages,
				Rounds:       rounds,
			}, nil
		}
	}

	logger.G(ctx).
		WithField("rounds", rounds).
		WithField("max_rounds", a.maxRounds).
		Warn("reached maximum round limit, stopping interaction")

	last := llmtypes.Message{Role: llmtypes.RoleAssistant, Content: maxRoundsNotice}
	if len(messages) > 0 && messages[len(messages)-1].IsAssistantText() {
		last = messages[len(messages)-1]
	} else {
		messages = append(messages, last)
	}

	return &Result{
		Outcome:      Degraded,
		Message:      last,
		Conversation: messages,
		Rounds:       rounds,
	}, nil
}

// Ask runs a single user prompt through the loop and returns the assistant
// text.
func (a *Agent) Ask(ctx context.Context, prompt string) (string, error) {
	result, err := a.ProcessMessage(ctx, []llmtypes.Message{llmtypes.NewUserMessage(prompt)})
	if err != nil {
		return "", err
	}
	return result.Message.Content, nil
}

// offeredTools is the tool surface for one round: the activation tool when
// a catalog is attached, then every registry tool in definition order.
func (a *Agent) offeredTools() []tooltypes.Tool {
	if a.skillTool == nil {
		return a.registry.Tools()
	}
	offered := make([]tooltypes.Tool, 0, len(a.registry.Tools())+1)
	offered = append(offered, a.skillTool)
	return append(offered, a.registry.Tools()...)
}

// executeToolCalls runs the calls strictly sequentially in request order
// and returns one correlated tool message per call, in the same order.
func (a *Agent) executeToolCalls(ctx context.Context, calls []llmtypes.ToolCall) []llmtypes.Message {
	results := make([]llmtypes.Message, 0, len(calls))
	for _, call := range calls {
		results = append(results, llmtypes.NewToolMessage(call.ID, call.Name, a.runToolCall(ctx, call)))
	}
	return results
}

func (a *Agent) runToolCall(ctx context.Context, call llmtypes.ToolCall) string {
	parameters, parseErr := ParseToolArguments(call.Name, call.Arguments)
	if parseErr != "" {
		logger.G(ctx).WithField("tool_name", call.Name).Warn("tool call arguments failed to parse")
		return parseErr
	}

	if a.skillTool != nil && call.Name == tools.SkillToolName {
		return tools.RunTool(ctx, a.state, a.skillTool, parameters).Content()
	}
	return a.registry.RunTool(ctx, a.state, call.Name, parameters).Content()
}
