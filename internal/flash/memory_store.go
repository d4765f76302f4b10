package flash

import (
	"context"
	"sync"
)

// MemoryStore is the single-process fallback used when Redis is not
// reachable, and the store injected by tests.
type MemoryStore struct {
	mu    sync.Mutex
	byKey map[string][]Message
}

// NewMemoryStore initializes an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byKey: make(map[string][]Message)}
}

func (s *MemoryStore) Add(_ context.Context, scope string, msg Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byKey[scope] = append(s.byKey[scope], msg)
	return nil
}

func (s *MemoryStore) Pop(_ context.Context, scope string) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msgs := s.byKey[scope]
	delete(s.byKey, scope)
	return msgs, nil
}
