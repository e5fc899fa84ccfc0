// Package store provides the SQLite-backed note store.
package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS notes (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	content    TEXT     NOT NULL,
	is_share   INTEGER  NOT NULL DEFAULT 0 CHECK (is_share IN (0, 1)),
	public_id  TEXT,
	owner      TEXT,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	CHECK ((is_share = 1) = (public_id IS NOT NULL))
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_notes_public_id ON notes(public_id) WHERE public_id IS NOT NULL;
CREATE INDEX IF NOT EXISTS idx_notes_owner ON notes(owner, is_share);
`

// DB wraps a sqlx.DB with note operations.
type DB struct {
	conn *sqlx.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sqlx.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Ping checks the database connection.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
