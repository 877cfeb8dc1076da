// Package llm provides completion clients: Vertex Gemini, OpenAI-compatible
// HTTP, and a scripted mock for tests and offline development.
package llm

import (
	"context"
	"sync"

	"github.com/fielddesk/fielddesk-agent/internal/domain"
)

// Mock is a scripted completion client. Replies are consumed in order;
// when the queue runs dry, ScriptFn (if set) answers, otherwise a neutral
// unknown-intent payload comes back so flows fail soft instead of hanging.
type Mock struct {
	mu      sync.Mutex
	replies []string

	// ScriptFn, when set, computes a reply from the prompts once queued
	// replies are exhausted.
	ScriptFn func(systemPrompt, userPrompt string) (string, error)

	// Calls records every (system, user) pair for assertions.
	Calls []MockCall
}

type MockCall struct {
	SystemPrompt string
	UserPrompt   string
	History      []domain.Turn
}

// NewMock queues the given replies.
func NewMock(replies ...string) *Mock {
	return &Mock{replies: replies}
}

// Enqueue appends replies to the script.
func (m *Mock) Enqueue(replies ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, replies...)
}

func (m *Mock) Complete(ctx context.Context, systemPrompt, userPrompt string, history []domain.Turn) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockCall{SystemPrompt: systemPrompt, UserPrompt: userPrompt, History: history})

	if len(m.replies) > 0 {
		reply := m.replies[0]
		m.replies = m.replies[1:]
		return reply, nil
	}
	if m.ScriptFn != nil {
		return m.ScriptFn(systemPrompt, userPrompt)
	}
	return `{"intent": "unknown", "operation": "unknown", "confidence": 0.0}`, nil
}

var _ domain.CompletionClient = (*Mock)(nil)
