// internal/repository/memory/store.go
package memory

import (
	"context"
	"sync"

	"fintrack/internal/repository"
	"fintrack/internal/util"
)

// Store implements repository.KVStore in process memory.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{data: make(map[string][]byte)}
}

var _ repository.KVStore = (*Store)(nil)

// Put stores a copy of value at key.
func (s *Store) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), value...)
	return nil
}

// Get returns a copy of the value at key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, util.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Clear drops every key.
func (s *Store) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string][]byte)
	return nil
}
