package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Tpepper2001/noteboard/internal/domain"
)

// SnapshotKey returns the fixed per-deployment key for a board mode.
// Shared and secure boards use distinct keys so their saved state never
// collides on a common medium.
func SnapshotKey(mode string) string {
	return "noteboard:" + mode + ":v1"
}

// Snapshots marshals the full ordered post sequence to JSON under a fixed
// key. The board always writes the complete current sequence; there are no
// partial or append writes.
type Snapshots struct {
	kv  KV
	key string
}

// NewSnapshots returns a snapshot codec over kv at key.
func NewSnapshots(kv KV, key string) *Snapshots {
	return &Snapshots{kv: kv, key: key}
}

// Save serializes posts and replaces the stored snapshot.
func (s *Snapshots) Save(ctx context.Context, posts []domain.Post) error {
	raw, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.kv.Save(ctx, s.key, raw); err != nil {
		return fmt.Errorf("save snapshot %q: %w", s.key, err)
	}
	return nil
}

// Load reads and decodes the stored snapshot. An absent key surfaces as
// ErrNotFound; malformed data surfaces as a decode error so the caller can
// choose to start empty.
func (s *Snapshots) Load(ctx context.Context) ([]domain.Post, error) {
	raw, err := s.kv.Load(ctx, s.key)
	if err != nil {
		return nil, err
	}
	var posts []domain.Post
	if err := json.Unmarshal(raw, &posts); err != nil {
		return nil, fmt.Errorf("decode snapshot %q: %w", s.key, err)
	}
	return posts, nil
}
