package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/MrJamesThe3rd/zentracker/internal/kv"
)

// Store keeps slots in process memory. Values are copied on the way in and out.
type Store struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func New() *Store {
	return &Store{slots: make(map[string][]byte)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.slots[key]
	if !ok {
		return nil, kv.ErrNotFound
	}

	return slices.Clone(v), nil
}

func (s *Store) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots[key] = slices.Clone(value)

	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.slots, key)

	return nil
}

func (s *Store) Close() error { return nil }
