// Package rediskv provides a store.KV implementation backed by Redis, for
// deployments where the board snapshot should live off-host. A Redis SET is
// a whole-value replace, which satisfies the port's atomic-replace contract.
package rediskv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Tpepper2001/noteboard/internal/store"
)

var _ store.KV = (*KV)(nil)

// KV implements store.KV over a single Redis client.
type KV struct {
	client  *redis.Client
	timeout time.Duration
}

// New parses url ("redis://..."), connects, and verifies the server with a
// ping before returning.
func New(url string, timeout time.Duration) (*KV, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	client := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &KV{client: client, timeout: timeout}, nil
}

// Save replaces the value stored under key. Snapshots carry their own expiry
// per post, so no Redis-level TTL is set.
func (kv *KV) Save(ctx context.Context, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, kv.timeout)
	defer cancel()
	return kv.client.Set(ctx, key, value, 0).Err()
}

// Load returns the value stored under key, or store.ErrNotFound.
func (kv *KV) Load(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, kv.timeout)
	defer cancel()
	raw, err := kv.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return raw, nil
}

// Ping reports whether the server is reachable; used by readiness probes.
func (kv *KV) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, kv.timeout)
	defer cancel()
	return kv.client.Ping(ctx).Err()
}

// Close releases the client's connections.
func (kv *KV) Close() error { return kv.client.Close() }
