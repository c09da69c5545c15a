// internal/repository/storage.go
package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"

	"fintrack/internal/util"
)

// Storage serializes values to JSON on top of a KVStore.
// Failures never propagate: they are logged and reported as "no durable effect".
type Storage struct {
	kv     KVStore
	logger *slog.Logger
}

// NewStorage creates a new Storage over kv.
func NewStorage(kv KVStore, logger *slog.Logger) *Storage {
	return &Storage{kv: kv, logger: logger}
}

// Save overwrites the value at key. It returns false if the value could not be
// made durable; the error has already been logged.
func (s *Storage) Save(ctx context.Context, key string, value any) bool {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Error("Failed to save data", "key", key, "error", err)
		return false
	}
	if err := s.kv.Put(ctx, key, data); err != nil {
		s.logger.Error("Failed to save data", "key", key, "error", err)
		return false
	}
	return true
}

// Get decodes the value at key into dest. It returns false when the key is
// missing, holds JSON null, or cannot be read or decoded.
func (s *Storage) Get(ctx context.Context, key string, dest any) bool {
	data, err := s.kv.Get(ctx, key)
	if err != nil {
		if !util.IsError(err, util.ErrNotFound) {
			s.logger.Error("Failed to fetch data", "key", key, "error", err)
		}
		return false
	}
	if len(bytes.TrimSpace(data)) == 0 || bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		s.logger.Error("Failed to fetch data", "key", key, "error", err)
		return false
	}
	return true
}

// Clear erases every key. Failures are logged and swallowed.
func (s *Storage) Clear(ctx context.Context) bool {
	if err := s.kv.Clear(ctx); err != nil {
		s.logger.Error("Failed to clear data", "error", err)
		return false
	}
	return true
}
