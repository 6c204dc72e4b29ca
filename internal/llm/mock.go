package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one canned reply for the MockProvider. Err, when set,
// wins over Content.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider serves canned responses in queue order and records every
// request it sees. An exhausted queue reports the provider unavailable,
// so a test that under-provisions responses fails loudly instead of
// hanging on empty content. Safe for concurrent use.
type MockProvider struct {
	mu    sync.Mutex
	queue []MockResponse
	next  int

	Calls []Request
}

func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{queue: responses}
}

// AddResponse appends one more canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, resp)
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if m.next >= len(m.queue) {
		return nil, &ErrProviderUnavailable{}
	}
	resp := m.queue[m.next]
	m.next++

	if resp.Err != nil {
		return nil, resp.Err
	}
	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      m.ModelID(),
		StopReason: "end",
	}, nil
}

func (m *MockProvider) ModelID() string { return "mock" }

// CallCount returns how many Generate calls were made so far.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
