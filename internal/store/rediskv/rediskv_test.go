package rediskv

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/Tpepper2001/noteboard/internal/store"
)

// Integration test: requires a live server, e.g.
// NOTEBOARD_TEST_REDIS_URL=redis://localhost:6379/15 go test ./...
func TestRedisKVRoundTrip(t *testing.T) {
	url := os.Getenv("NOTEBOARD_TEST_REDIS_URL")
	if url == "" {
		t.Skip("NOTEBOARD_TEST_REDIS_URL not set")
	}
	kv, err := New(url, 2*time.Second)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })

	ctx := context.Background()
	key := store.SnapshotKey("shared") + ":test"

	if _, err := kv.Load(ctx, key+":absent"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected store.ErrNotFound, got %v", err)
	}
	if err := kv.Save(ctx, key, []byte("hello")); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	got, err := kv.Load(ctx, key)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if string(got) != "hello" {
		t.Fatalf("Load returned %q", got)
	}
	if err := kv.Save(ctx, key, []byte("replaced")); err != nil {
		t.Fatalf("replace Save error: %v", err)
	}
	got, err = kv.Load(ctx, key)
	if err != nil {
		t.Fatalf("Load after replace error: %v", err)
	}
	if string(got) != "replaced" {
		t.Fatalf("expected replaced value, got %q", got)
	}
}

func TestNewRejectsBadURL(t *testing.T) {
	if _, err := New("not-a-url", time.Second); err == nil {
		t.Fatal("expected error for malformed url")
	}
}
