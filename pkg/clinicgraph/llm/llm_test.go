package llm

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMockClient_CannedResponses tests response cycling and repetition.
func TestMockClient_CannedResponses(t *testing.T) {
	mock := NewMockClient("first", "second")
	ctx := context.Background()

	resp, err := mock.Complete(ctx, CompletionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "first", resp.Content)

	resp, err = mock.Complete(ctx, CompletionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "second", resp.Content)

	// The final response repeats once exhausted
	resp, err = mock.Complete(ctx, CompletionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "second", resp.Content)
}

// TestMockClient_NoResponses tests the empty-reply default.
func TestMockClient_NoResponses(t *testing.T) {
	mock := NewMockClient()

	resp, err := mock.Complete(context.Background(), CompletionRequest{})
	require.NoError(t, err)
	assert.Empty(t, resp.Content)
}

// TestMockClient_RecordsRequests tests request capture.
func TestMockClient_RecordsRequests(t *testing.T) {
	mock := NewMockClient("ok")
	ctx := context.Background()

	assert.Zero(t, mock.CallCount())
	assert.Nil(t, mock.LastRequest())

	_, err := mock.Complete(ctx, CompletionRequest{SystemPrompt: "one"})
	require.NoError(t, err)
	_, err = mock.Complete(ctx, CompletionRequest{SystemPrompt: "two"})
	require.NoError(t, err)

	assert.Equal(t, 2, mock.CallCount())
	assert.Equal(t, "two", mock.LastRequest().SystemPrompt)

	requests := mock.Requests()
	require.Len(t, requests, 2)
	assert.Equal(t, "one", requests[0].SystemPrompt)
}

// TestNewOpenAIClient_RequiresKey tests credential resolution.
func TestNewOpenAIClient_RequiresKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := NewOpenAIClient("")
	assert.Error(t, err)

	client, err := NewOpenAIClient("sk-test")
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, client.model)
}

// TestNewOpenAIClient_Options tests option application.
func TestNewOpenAIClient_Options(t *testing.T) {
	client, err := NewOpenAIClient("sk-test",
		WithModel(openai.GPT4o),
		WithTemperature(0.7))
	require.NoError(t, err)

	assert.Equal(t, openai.GPT4o, client.model)
	assert.Equal(t, float32(0.7), client.temperature)
}

// TestOpenAIClient_BuildRequest tests model and temperature resolution.
func TestOpenAIClient_BuildRequest(t *testing.T) {
	client, err := NewOpenAIClient("sk-test",
		WithModel(openai.GPT4o),
		WithTemperature(0.7))
	require.NoError(t, err)

	wire := client.buildRequest(CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})
	assert.Equal(t, openai.GPT4o, wire.Model)
	assert.Equal(t, float32(0.7), wire.Temperature)

	// Per-request values override the client defaults
	wire = client.buildRequest(CompletionRequest{
		Model:       "gpt-4",
		Temperature: 0.2,
	})
	assert.Equal(t, "gpt-4", wire.Model)
	assert.Equal(t, float32(0.2), wire.Temperature)
}

// TestOpenAIClient_ZeroTemperatureOnWire tests that the default pinned
// temperature of 0 survives the wire encoding. go-openai drops a zero
// Temperature via omitempty, which would silently hand the API its own
// default of 1.
func TestOpenAIClient_ZeroTemperatureOnWire(t *testing.T) {
	client, err := NewOpenAIClient("sk-test")
	require.NoError(t, err)

	wire := client.buildRequest(CompletionRequest{
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
	})
	assert.Positive(t, wire.Temperature)

	data, err := json.Marshal(wire)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"temperature"`)
}

// TestToOpenAIMessages tests wire-format conversion.
func TestToOpenAIMessages(t *testing.T) {
	msgs := toOpenAIMessages("be helpful", []Message{
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAssistant, Content: "hello"},
	})

	require.Len(t, msgs, 3)
	assert.Equal(t, openai.ChatMessageRoleSystem, msgs[0].Role)
	assert.Equal(t, "be helpful", msgs[0].Content)
	assert.Equal(t, openai.ChatMessageRoleUser, msgs[1].Role)
	assert.Equal(t, openai.ChatMessageRoleAssistant, msgs[2].Role)
}

// TestToOpenAIMessages_NoSystemPrompt tests that no empty system turn
// is prepended.
func TestToOpenAIMessages_NoSystemPrompt(t *testing.T) {
	msgs := toOpenAIMessages("", []Message{{Role: RoleUser, Content: "hi"}})

	require.Len(t, msgs, 1)
	assert.Equal(t, openai.ChatMessageRoleUser, msgs[0].Role)
}

// TestToOpenAIRole tests role mapping including the unknown fallback.
func TestToOpenAIRole(t *testing.T) {
	assert.Equal(t, openai.ChatMessageRoleUser, toOpenAIRole(RoleUser))
	assert.Equal(t, openai.ChatMessageRoleAssistant, toOpenAIRole(RoleAssistant))
	assert.Equal(t, openai.ChatMessageRoleSystem, toOpenAIRole(RoleSystem))
	assert.Equal(t, openai.ChatMessageRoleUser, toOpenAIRole(Role("tool")))
}

// TestMockClient_ReportsUsage tests the configured canned usage.
func TestMockClient_ReportsUsage(t *testing.T) {
	mock := NewMockClient("ok")
	mock.SetUsage(TokenUsage{InputTokens: 2, OutputTokens: 1, TotalTokens: 3})

	resp, err := mock.Complete(context.Background(), CompletionRequest{})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Usage.TotalTokens)
}

// TestTokenUsage_Add tests usage accumulation.
func TestTokenUsage_Add(t *testing.T) {
	total := TokenUsage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}
	total.Add(TokenUsage{InputTokens: 3, OutputTokens: 2, TotalTokens: 5})

	assert.Equal(t, 13, total.InputTokens)
	assert.Equal(t, 7, total.OutputTokens)
	assert.Equal(t, 20, total.TotalTokens)
}
