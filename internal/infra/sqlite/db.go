// Package sqlite persists the shop's catalog, kasbon ledger, and the
// append-only transaction history.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// DB wraps the sqlite handle and exposes typed operations.
type DB struct {
	db *sql.DB
}

// Open opens (creating if needed) the shop database inside dir and runs
// all migrations.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	path := filepath.Join(dir, "kasir.db")

	handle, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// The append-only history relies on a single writer.
	handle.SetMaxOpenConns(1)

	db := &DB{db: handle}
	if err := db.migrate(); err != nil {
		handle.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the underlying handle.
func (db *DB) Close() error { return db.db.Close() }

// migrate executes every schema statement. SQLite runs one at a time.
func (db *DB) migrate() error {
	var stmts []string
	stmts = append(stmts, catalogMigrations()...)
	stmts = append(stmts, customerMigrations()...)
	stmts = append(stmts, transactionMigrations()...)

	for _, stmt := range stmts {
		if _, err := db.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
