// Package store defines the persistence-adapter port for board snapshots and
// the codec that rides on top of it. Concrete key-value backends (SQLite,
// filesystem, Redis) live in subpackages; callers above this layer deal only
// in []domain.Post.
package store

import (
	"context"
	"errors"
)

// ErrNotFound indicates the key has never been written (or its medium was
// wiped). Callers treat it as "start empty", never as a failure.
var ErrNotFound = errors.New("snapshot not found")

// KV is the durable string-keyed byte-value surface the board persists
// through. Both operations are best-effort from the board's point of view:
// a failed Save must not fail the mutation that triggered it, and a failed
// Load degrades to an empty board.
//
// Save must atomically replace the previous value: after a crash mid-write
// the medium holds either the old or the fully-new snapshot, never a torn
// one.
type KV interface {
	Save(ctx context.Context, key string, value []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
}
