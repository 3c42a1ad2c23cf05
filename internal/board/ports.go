// Package board contains the post store: the ordered in-memory collection of
// live posts and its create/prune/load/persist lifecycle. It depends on
// small ports for time and durability so the core rules stay testable
// without I/O.
package board

import (
	"context"
	"time"

	"github.com/Tpepper2001/noteboard/internal/domain"
)

// Clock abstracts time to enable deterministic testing of TTL / expiry logic.
type Clock interface {
	// Now returns the current wall-clock time.
	Now() time.Time
}

// SnapshotStore is the durability port. The board is the sole writer and
// always hands over the full current sequence; the store has no independent
// authority over the data.
type SnapshotStore interface {
	Save(ctx context.Context, posts []domain.Post) error
	Load(ctx context.Context) ([]domain.Post, error)
}
