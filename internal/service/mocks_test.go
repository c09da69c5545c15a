// internal/service/mocks_test.go
package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"fintrack/internal/repository"
	"fintrack/internal/repository/memory"
	"fintrack/internal/util"
)

// MockKVStore is a mock implementation of repository.KVStore.
type MockKVStore struct {
	mock.Mock
}

func (m *MockKVStore) Put(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockKVStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// newMemoryStorage returns a Storage over a fresh in-memory backend, plus the backend.
func newMemoryStorage(t *testing.T) (*repository.Storage, *memory.Store) {
	t.Helper()
	kv := memory.NewStore()
	return repository.NewStorage(kv, util.DiscardLogger()), kv
}
