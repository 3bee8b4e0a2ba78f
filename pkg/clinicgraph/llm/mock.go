package llm

import (
	"context"
	"sync"
)

// MockClient is a Client that returns canned responses.
// It records every request for assertions in tests, and lets examples
// run without a network or credential.
type MockClient struct {
	mu        sync.Mutex
	responses []string
	requests  []CompletionRequest
	usage     TokenUsage
	next      int
}

// NewMockClient creates a mock that cycles through the given responses.
// After the last response is consumed, it keeps returning the final one.
// With no responses configured, Complete returns an empty reply.
func NewMockClient(responses ...string) *MockClient {
	return &MockClient{responses: responses}
}

// Complete implements Client.
func (m *MockClient) Complete(_ context.Context, req CompletionRequest) (*CompletionResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)

	content := ""
	if len(m.responses) > 0 {
		idx := m.next
		if idx >= len(m.responses) {
			idx = len(m.responses) - 1
		}
		content = m.responses[idx]
		m.next++
	}

	return &CompletionResponse{
		Content:      content,
		Model:        "mock",
		FinishReason: "stop",
		Usage:        m.usage,
	}, nil
}

// SetUsage sets the token usage reported on every subsequent response.
// The zero default reports no consumption.
func (m *MockClient) SetUsage(usage TokenUsage) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.usage = usage
}

// CallCount returns how many completions were requested.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Requests returns a copy of all recorded requests.
func (m *MockClient) Requests() []CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]CompletionRequest(nil), m.requests...)
}

// LastRequest returns the most recent request, or nil if none were made.
func (m *MockClient) LastRequest() *CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return nil
	}
	req := m.requests[len(m.requests)-1]
	return &req
}

// Compile-time interface check.
var _ Client = (*MockClient)(nil)
