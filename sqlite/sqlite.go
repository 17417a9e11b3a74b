// Package sqlite provides the SQLite-backed conversation archive.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// pragmas are applied in order on every Open. The archive is written by a
// single process, so one connection with a busy timeout is enough.
var pragmas = []struct {
	stmt       string
	fileOnly   bool
	errContext string
}{
	{stmt: "PRAGMA busy_timeout = 5000", errContext: "set busy timeout"},
	{stmt: "PRAGMA journal_mode = WAL", fileOnly: true, errContext: "enable WAL mode"},
	{stmt: "PRAGMA foreign_keys = ON", errContext: "enable foreign keys"},
}

// Open connects to the archive, applies pragmas and creates missing tables.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	for _, p := range pragmas {
		if p.fileOnly && db.path == ":memory:" {
			continue
		}
		if _, err := conn.Exec(p.stmt); err != nil {
			conn.Close()
			return fmt.Errorf("failed to %s: %w", p.errContext, err)
		}
	}

	db.db = conn
	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// Stats returns database statistics.
func (db *DB) Stats() sql.DBStats {
	return db.db.Stats()
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, opts)
}

// createSchema creates the database tables if they don't exist.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS conversations (
			id TEXT PRIMARY KEY,
			share_id TEXT NOT NULL,
			source_url TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			strategy TEXT NOT NULL DEFAULT '',
			content_hash TEXT NOT NULL,
			fetched_at TEXT NOT NULL,
			UNIQUE (share_id, content_hash)
		);

		CREATE TABLE IF NOT EXISTS turns (
			conversation_id TEXT NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
			number INTEGER NOT NULL,
			role TEXT NOT NULL,
			text TEXT NOT NULL DEFAULT '',
			markdown TEXT NOT NULL DEFAULT '',
			code_blocks TEXT NOT NULL DEFAULT '[]',
			links TEXT NOT NULL DEFAULT '[]',
			images TEXT NOT NULL DEFAULT '[]',
			raw_html TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (conversation_id, number)
		);

		CREATE INDEX IF NOT EXISTS idx_conversations_share_id ON conversations(share_id);
		CREATE INDEX IF NOT EXISTS idx_conversations_source_url ON conversations(source_url);
	`

	_, err := db.db.Exec(schema)
	return err
}
