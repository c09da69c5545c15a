// internal/repository/sqlstore/store.go
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"fintrack/internal/repository"
	"fintrack/internal/util"
	"fintrack/pkg/db"
)

const schema = `CREATE TABLE IF NOT EXISTS kv_store (
	store_key   VARCHAR(255) PRIMARY KEY,
	store_value TEXT         NOT NULL,
	updated_at  TIMESTAMP    NOT NULL
)`

// Store implements repository.KVStore on a single SQL table.
// The same queries run on SQLite and PostgreSQL; placeholders are rebound per driver.
type Store struct {
	conn       *sqlx.DB
	q          repository.DBExecutor
	beginTx    db.BeginTxFunc
	commitTx   db.CommitTxFunc
	rollbackTx db.RollbackTxFunc
}

var _ repository.KVStore = (*Store)(nil)

// NewStore creates a new Store on conn.
func NewStore(conn *sqlx.DB) *Store {
	return &Store{
		conn:       conn,
		q:          conn,
		beginTx:    db.BeginTx,
		commitTx:   db.CommitTx,
		rollbackTx: db.RollbackTx,
	}
}

// Migrate creates the key-value table if it does not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	txController, err := s.beginTx(ctx, s.conn)
	if err != nil {
		return fmt.Errorf("migrate: failed to begin transaction: %w", err)
	}
	defer s.rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return fmt.Errorf("migrate: transaction controller does not implement DBExecutor")
	}
	if _, err := txExecutor.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: failed to create kv_store table: %w", err)
	}
	if err := s.commitTx(txController); err != nil {
		return fmt.Errorf("migrate: failed to commit transaction: %w", err)
	}
	return nil
}

// Put upserts the value stored at key.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	query := s.q.Rebind(`INSERT INTO kv_store (store_key, store_value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (store_key) DO UPDATE SET store_value = excluded.store_value, updated_at = excluded.updated_at`)
	if _, err := s.q.ExecContext(ctx, query, key, string(value), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to put key %q: %w", key, err)
	}
	return nil
}

// Get retrieves the value stored at key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	query := s.q.Rebind(`SELECT store_value FROM kv_store WHERE store_key = ?`)
	if err := s.q.GetContext(ctx, &value, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, util.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get key %q: %w", key, err)
	}
	return []byte(value), nil
}

// Clear deletes every row.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.q.ExecContext(ctx, `DELETE FROM kv_store`); err != nil {
		return fmt.Errorf("failed to clear kv_store: %w", err)
	}
	return nil
}

// Keys lists the stored keys in ascending order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	keys := []string{}
	if err := s.q.SelectContext(ctx, &keys, `SELECT store_key FROM kv_store ORDER BY store_key`); err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	return keys, nil
}
