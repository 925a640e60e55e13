package session

import (
	"context"
	"sync"

	"github.com/hupe1980/agentlab/core"
)

// InMemoryStore is a thread-safe Store backed by a map. Histories live for
// the lifetime of the process.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]core.Content
}

// NewInMemoryStore creates an empty in-memory session store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		sessions: make(map[string][]core.Content),
	}
}

// Append implements Store.
func (s *InMemoryStore) Append(_ context.Context, sessionID string, messages ...core.Content) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[sessionID] = append(s.sessions[sessionID], messages...)

	return nil
}

// Messages implements Store.
func (s *InMemoryStore) Messages(_ context.Context, sessionID string) ([]core.Content, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.sessions[sessionID]
	out := make([]core.Content, len(history))
	copy(out, history)

	return out, nil
}

// Clear implements Store.
func (s *InMemoryStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)

	return nil
}
