// internal/repository/kv_store.go
package repository

import "context"

// KVStore defines the raw key-value operations a storage backend must provide.
// Values are opaque byte blobs; a whole collection lives under one key.
type KVStore interface {
	// Put overwrites the value stored at key.
	Put(ctx context.Context, key string, value []byte) error
	// Get returns the value stored at key, or util.ErrNotFound if there is none.
	Get(ctx context.Context, key string) ([]byte, error)
	// Clear erases every key.
	Clear(ctx context.Context) error
}
