// Package llm implements the model gateway: provider presets, configuration
// assembly, and a chat-completions client that normalizes backend responses
// into provider-neutral messages for the reasoning loop.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/pkg/errors"
	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel/attribute"

	"github.com/skillet-ai/skillet/pkg/logger"
	"github.com/skillet-ai/skillet/pkg/telemetry"
	"github.com/skillet-ai/skillet/pkg/tools"
	llmtypes "github.com/skillet-ai/skillet/pkg/types/llm"
	tooltypes "github.com/skillet-ai/skillet/pkg/types/tools"
)

var tracer = telemetry.Tracer("skillet.llm")

// Client is the chat-completions gateway. One implementation serves every
// provider preset because all of them expose OpenAI-compatible endpoints.
type Client struct {
	client    *openai.Client
	model     string
	maxTokens int
	retry     llmtypes.RetryConfig
}

// NewClient builds a gateway client from config. The API key is read from
// the preset's environment variable (api_key_env overrides which one); a
// missing key is a configuration error and aborts construction.
func NewClient(config llmtypes.Config) (*Client, error) {
	if config.Model == "" {
		config.Model = DefaultModel(config.Provider)
	}
	if config.Retry.Attempts == 0 {
		config.Retry = llmtypes.DefaultRetryConfig
	}

	preset := PresetFor(config.Provider)

	apiKeyEnv := preset.APIKeyEnv
	if config.APIKeyEnv != "" {
		apiKeyEnv = config.APIKeyEnv
	}
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return nil, errors.Errorf("%s environment variable is required", apiKeyEnv)
	}

	clientConfig := openai.DefaultConfig(apiKey)
	clientConfig.BaseURL = preset.BaseURL
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &Client{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     config.Model,
		maxTokens: config.MaxTokens,
		retry:     config.Retry,
	}, nil
}

// Model returns the model name requests are issued against.
func (c *Client) Model() string {
	return c.model
}

// Send issues one chat-completion request and normalizes the first choice
// into messages: assistant text and tool calls surfaced verbatim, wire
// order preserved. Transport failures are retried per the retry config;
// whatever still fails becomes a synthetic assistant message reading
// "Error: <detail>" so the conversation stays well-formed. Caller-initiated
// context cancellation is the one failure returned as an error.
func (c *Client) Send(ctx context.Context, systemPrompt string, conversation []llmtypes.Message, offered []tooltypes.Tool) ([]llmtypes.Message, error) {
	ctx, span := tracer.Start(ctx, "llm.send")
	defer span.End()

	request := openai.ChatCompletionRequest{
		Model:     c.model,
		Messages:  toOpenAIMessages(systemPrompt, conversation),
		MaxTokens: c.maxTokens,
	}
	if len(offered) > 0 {
		request.Tools = tools.ToOpenAITools(offered)
		request.ParallelToolCalls = true
	}

	telemetry.AddEvent(ctx, "api_call_start",
		attribute.String("model", c.model),
		attribute.Int("messages", len(request.Messages)),
	)

	response, err := c.createChatCompletionWithRetry(ctx, request)
	if err != nil {
		if ctx.Err() != nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		logger.G(ctx).WithError(err).WithField("model", c.model).Error("chat completion failed")
		return []llmtypes.Message{{
			Role:    llmtypes.RoleAssistant,
			Content: fmt.Sprintf("Error: %v", err),
		}}, nil
	}

	telemetry.AddEvent(ctx, "api_call_complete",
		attribute.Int("prompt_tokens", response.Usage.PromptTokens),
		attribute.Int("completion_tokens", response.Usage.CompletionTokens),
	)

	if len(response.Choices) == 0 {
		logger.G(ctx).WithField("model", c.model).Error("no response choices returned")
		return []llmtypes.Message{{
			Role:    llmtypes.RoleAssistant,
			Content: "Error: no response choices returned",
		}}, nil
	}

	return []llmtypes.Message{fromOpenAIMessage(response.Choices[0].Message)}, nil
}

func (c *Client) createChatCompletionWithRetry(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	var response openai.ChatCompletionResponse

	initialDelay := time.Duration(c.retry.InitialDelay) * time.Millisecond
	maxDelay := time.Duration(c.retry.MaxDelay) * time.Millisecond

	var delayType retry.DelayTypeFunc
	switch c.retry.BackoffType {
	case "fixed":
		delayType = retry.FixedDelay
	case "exponential":
		fallthrough
	default:
		delayType = retry.BackOffDelay
	}

	err := retry.Do(
		func() error {
			var apiErr error
			response, apiErr = c.client.CreateChatCompletion(ctx, request)
			return apiErr
		},
		retry.RetryIf(isRetryableError),
		retry.Attempts(uint(c.retry.Attempts)),
		retry.Delay(initialDelay),
		retry.DelayType(delayType),
		retry.MaxDelay(maxDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.G(ctx).WithError(err).WithField("attempt", n+1).WithField("max_attempts", c.retry.Attempts).Warn("retrying chat completion")
		}),
	)

	return response, err
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		statusCode := apiErr.HTTPStatusCode
		return statusCode >= 400 && statusCode < 600
	}

	var httpErr *openai.RequestError
	if errors.As(err, &httpErr) {
		return true
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	return false
}

func toOpenAIMessages(systemPrompt string, conversation []llmtypes.Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(conversation)+1)
	out = append(out, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})
	for _, msg := range conversation {
		converted := openai.ChatCompletionMessage{
			Role:       msg.Role,
			Content:    msg.Content,
			ToolCallID: msg.ToolCallID,
			Name:       msg.ToolName,
		}
		for _, call := range msg.ToolCalls {
			converted.ToolCalls = append(converted.ToolCalls, openai.ToolCall{
				ID:   call.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      call.Name,
					Arguments: argumentsWireText(call.Arguments),
				},
			})
		}
		out = append(out, converted)
	}
	return out
}

// fromOpenAIMessage lifts the backend reply into the neutral message type.
// The arguments of each tool call arrive as a string on the wire; they are
// re-encoded as a JSON string token so the loop's parser sees the same
// value shape the backend sent.
func fromOpenAIMessage(msg openai.ChatCompletionMessage) llmtypes.Message {
	out := llmtypes.Message{
		Role:    llmtypes.RoleAssistant,
		Content: msg.Content,
	}
	for _, call := range msg.ToolCalls {
		raw, _ := json.Marshal(call.Function.Arguments)
		out.ToolCalls = append(out.ToolCalls, llmtypes.ToolCall{
			ID:        call.ID,
			Name:      call.Function.Name,
			Arguments: json.RawMessage(raw),
		})
	}
	return out
}

// argumentsWireText converts a stored argument value back to the string the
// chat-completions wire expects. String tokens round-trip to their inner
// text; any other JSON value is sent as its raw encoding.
func argumentsWireText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
