// Package sqlite provides a SQLite-backed implementation of the store.KV
// port. Each snapshot key maps to one row; writes are UPSERTs inside a
// single statement, so the stored value is replaced atomically.
package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Tpepper2001/noteboard/internal/store"

	// database/sql SQLite driver
	_ "github.com/mattn/go-sqlite3"
)

var _ store.KV = (*KV)(nil)

// KV implements store.KV using SQLite (via database/sql). It is safe for
// concurrent use; database/sql manages connection pooling and serialization.
type KV struct{ db *sql.DB }

// DSN builds the SQLite connection string for a database file at path,
// enabling WAL journaling and full synchronous writes so a crash mid-write
// leaves either the old or the fully-new snapshot.
func DSN(path string) string {
	return "file:" + path + "?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000&_synchronous=FULL"
}

// Open opens (creating if needed) the database at path and initializes the
// schema.
func Open(path string) (*KV, error) {
	db, err := sql.Open("sqlite3", DSN(path))
	if err != nil {
		return nil, err
	}
	kv, err := New(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return kv, nil
}

// New constructs a KV over an existing handle, initializing the required
// schema if absent.
func New(db *sql.DB) (*KV, error) {
	kv := &KV{db: db}
	if err := kv.init(); err != nil {
		return nil, err
	}
	return kv, nil
}

func (kv *KV) init() error {
	schema := `CREATE TABLE IF NOT EXISTS board_state (
key TEXT PRIMARY KEY,
value BLOB NOT NULL,
updated_at INTEGER NOT NULL
);`
	_, err := kv.db.Exec(schema)
	return err
}

// Save replaces the value stored under key.
func (kv *KV) Save(ctx context.Context, key string, value []byte) error {
	const q = `INSERT INTO board_state (key, value, updated_at) VALUES (?, ?, unixepoch())
ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`
	_, err := kv.db.ExecContext(ctx, q, key, value)
	return err
}

// Load returns the value stored under key, or store.ErrNotFound.
func (kv *KV) Load(ctx context.Context, key string) ([]byte, error) {
	const q = `SELECT value FROM board_state WHERE key = ?`
	var value []byte
	if err := kv.db.QueryRowContext(ctx, q, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

// Ping reports whether the database is reachable; used by readiness probes.
func (kv *KV) Ping(ctx context.Context) error { return kv.db.PingContext(ctx) }

// Close closes the underlying handle.
func (kv *KV) Close() error { return kv.db.Close() }
