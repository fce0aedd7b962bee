// Package db owns the sqlite database holding persisted grid snapshots,
// including its schema migrations.
package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps the sqlite connection used by the snapshot stores.
type DB struct {
	*sql.DB
}

// OpenDB opens (creating if necessary) the sqlite database at path without
// touching the schema; migrations manage it. Use ":memory:" for tests.
func OpenDB(path string) (*DB, error) {
	sqldb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	// Single writer with retry-friendly settings. WAL keeps readers
	// unblocked while snapshots are inserted.
	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA busy_timeout = 5000;",
		"PRAGMA foreign_keys = ON;",
	}
	for _, p := range pragmas {
		if _, err := sqldb.Exec(p); err != nil {
			sqldb.Close()
			return nil, fmt.Errorf("apply %q: %w", p, err)
		}
	}

	return &DB{sqldb}, nil
}
