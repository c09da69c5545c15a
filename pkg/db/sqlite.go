// pkg/db/sqlite.go
package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// NewSQLiteDB opens the on-device SQLite database at path (":memory:" for an ephemeral one).
// SQLite allows a single writer, so the pool is capped at one connection;
// this also keeps ":memory:" databases from splitting across connections.
func NewSQLiteDB(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database %q: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
