package llm

import (
	"context"
	"sync"
	"time"
)

// MockClient permite tests sin llamar a un LLM real.
type MockClient struct {
	Deltas []string
	// Err se devuelve despues de emitir FailAfter deltas (o todos si FailAfter < 0).
	Err       error
	FailAfter int
	Delay     time.Duration

	mu       sync.Mutex
	requests []ChatRequest
}

func (m *MockClient) StreamChat(ctx context.Context, req ChatRequest, onDelta DeltaFunc) error {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	for i, d := range m.Deltas {
		if m.Err != nil && m.FailAfter >= 0 && i >= m.FailAfter {
			return m.Err
		}
		if m.Delay > 0 {
			select {
			case <-time.After(m.Delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := onDelta(d); err != nil {
			return err
		}
	}
	if m.Err != nil {
		return m.Err
	}
	return ctx.Err()
}

// Requests devuelve las llamadas recibidas.
func (m *MockClient) Requests() []ChatRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ChatRequest, len(m.requests))
	copy(out, m.requests)
	return out
}
