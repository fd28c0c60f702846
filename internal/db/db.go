// Package db opens the SQLite database holding form versions and uploads.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory store.
const MemoryPath = ":memory:"

// connParams apply to every pooled connection. Transactions take the write
// lock on BEGIN so two registrations of the same form cannot both claim the
// next version number.
const connParams = "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"

// OpenDB opens the form store at path, creating parent directories, and
// applies pending migrations. File stores use WAL so CLI reads do not block
// an ingest in progress.
func OpenDB(path string) (*sql.DB, error) {
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path+connParams)
	if err != nil {
		return nil, fmt.Errorf("opening form store %s: %w", path, err)
	}

	if path == MemoryPath {
		// every connection would get its own empty database
		conn.SetMaxOpenConns(1)
	} else if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enabling WAL on %s: %w", path, err)
	}

	if err := Migrate(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrating form store %s: %w", path, err)
	}
	return conn, nil
}
