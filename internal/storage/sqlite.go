package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

var sqliteQueries = sqlQueries{
	create: `
        CREATE TABLE IF NOT EXISTS kv (
            key TEXT PRIMARY KEY,
            value BLOB NOT NULL,
            updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
        )
    `,
	get: "SELECT value FROM kv WHERE key = ?",
	upsert: `INSERT INTO kv (key, value) VALUES (?, ?)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
	delete: "DELETE FROM kv WHERE key = ?",
}

// NewSQLiteStore opens (or creates) a SQLite database at path.
// ":memory:" gives a private in-memory database.
func NewSQLiteStore(path string) (*SQLStore, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// SQLite allows a single writer; an in-memory database also lives on one connection
	db.SetMaxOpenConns(1)

	return newSQLStore(context.Background(), db, sqliteQueries)
}
