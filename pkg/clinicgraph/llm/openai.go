package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/sashabaranov/go-openai"
)

// DefaultModel is used when a request doesn't name a model.
const DefaultModel = openai.GPT4oMini

// OpenAIClient is a Client backed by the OpenAI chat completions API.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	temperature float32
}

// OpenAIOption configures an OpenAIClient.
type OpenAIOption func(*OpenAIClient)

// WithModel sets the default model for requests that don't name one.
func WithModel(model string) OpenAIOption {
	return func(c *OpenAIClient) {
		c.model = model
	}
}

// WithTemperature sets the default sampling temperature.
// The assistant defaults to 0 for deterministic replies.
func WithTemperature(t float32) OpenAIOption {
	return func(c *OpenAIClient) {
		c.temperature = t
	}
}

// NewOpenAIClient creates a client using the given API key.
// If apiKey is empty, OPENAI_API_KEY is read from the environment;
// an error is returned if no credential is available.
func NewOpenAIClient(apiKey string, opts ...OpenAIOption) (*OpenAIClient, error) {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New("llm: OPENAI_API_KEY not set")
	}

	c := &OpenAIClient{
		client: openai.NewClient(apiKey),
		model:  DefaultModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Complete implements Client.
func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, c.buildRequest(req))
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("llm: no choices in completion response")
	}

	choice := resp.Choices[0]
	return &CompletionResponse{
		Content:      choice.Message.Content,
		Model:        resp.Model,
		FinishReason: string(choice.FinishReason),
		Duration:     time.Since(start),
		Usage: TokenUsage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// buildRequest resolves the model and temperature into the wire request.
// go-openai marshals Temperature with omitempty, which strips a zero and
// lets the API fall back to its own default of 1. A pinned 0 is sent as
// the smallest positive float so the field survives encoding.
func (c *OpenAIClient) buildRequest(req CompletionRequest) openai.ChatCompletionRequest {
	model := req.Model
	if model == "" {
		model = c.model
	}
	temperature := req.Temperature
	if temperature == 0 {
		temperature = c.temperature
	}
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	return openai.ChatCompletionRequest{
		Model:       model,
		Messages:    toOpenAIMessages(req.SystemPrompt, req.Messages),
		MaxTokens:   req.MaxTokens,
		Temperature: temperature,
	}
}

// toOpenAIMessages converts neutral messages to the OpenAI wire format,
// prepending the system prompt when present.
func toOpenAIMessages(systemPrompt string, messages []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	if systemPrompt != "" {
		out = append(out, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	for _, m := range messages {
		out = append(out, openai.ChatCompletionMessage{
			Role:    toOpenAIRole(m.Role),
			Content: m.Content,
		})
	}
	return out
}

// toOpenAIRole maps a neutral role to an OpenAI role.
// Unknown roles fall back to user.
func toOpenAIRole(role Role) string {
	switch role {
	case RoleAssistant:
		return openai.ChatMessageRoleAssistant
	case RoleSystem:
		return openai.ChatMessageRoleSystem
	default:
		return openai.ChatMessageRoleUser
	}
}

// Compile-time interface check.
var _ Client = (*OpenAIClient)(nil)
