package api

import (
	"context"
	"sync"
)

// MockChatClient is a mock implementation of ChatClientInterface for testing
type MockChatClient struct {
	// Mock return values
	Reply       string
	Err         error
	EndpointVal string
	// SendFunc, when set, takes precedence over Reply/Err
	SendFunc func(ctx context.Context, message string) (string, error)

	// Call counters/recorders
	mu          sync.Mutex
	calls       int
	messages    []string
	CloseCalled bool
}

// Ensure MockChatClient implements ChatClientInterface
var _ ChatClientInterface = (*MockChatClient)(nil)

func (m *MockChatClient) Send(ctx context.Context, message string) (string, error) {
	m.mu.Lock()
	m.calls++
	m.messages = append(m.messages, message)
	fn := m.SendFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, message)
	}
	return m.Reply, m.Err
}

func (m *MockChatClient) Endpoint() string {
	return m.EndpointVal
}

func (m *MockChatClient) Close() {
	m.CloseCalled = true
}

// Calls returns how many times Send was invoked
func (m *MockChatClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Messages returns every message passed to Send, in order
func (m *MockChatClient) Messages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.messages))
	copy(out, m.messages)
	return out
}
