package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Tpepper2001/noteboard/internal/store"
)

func openTestKV(t *testing.T) *KV {
	t.Helper()
	kv, err := Open(filepath.Join(t.TempDir(), "noteboard.db"))
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func TestDSN(t *testing.T) {
	dsn := DSN("/var/lib/noteboard/noteboard.db")
	for _, want := range []string{"file:/var/lib/noteboard/noteboard.db", "_journal_mode=WAL", "_synchronous=FULL", "_busy_timeout=5000"} {
		if !strings.Contains(dsn, want) {
			t.Fatalf("DSN %q missing %q", dsn, want)
		}
	}
	if strings.Count(dsn, "?") != 1 {
		t.Fatalf("expected exactly one '?' in DSN: %q", dsn)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	kv := openTestKV(t)
	ctx := context.Background()
	key := store.SnapshotKey("shared")

	if err := kv.Save(ctx, key, []byte(`[{"id":"x"}]`)); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	got, err := kv.Load(ctx, key)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if string(got) != `[{"id":"x"}]` {
		t.Fatalf("Load returned %q", got)
	}
}

func TestSaveReplacesPreviousValue(t *testing.T) {
	kv := openTestKV(t)
	ctx := context.Background()
	key := store.SnapshotKey("secure")

	if err := kv.Save(ctx, key, []byte("old")); err != nil {
		t.Fatalf("first Save error: %v", err)
	}
	if err := kv.Save(ctx, key, []byte("new")); err != nil {
		t.Fatalf("second Save error: %v", err)
	}
	got, err := kv.Load(ctx, key)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if string(got) != "new" {
		t.Fatalf("expected replaced value, got %q", got)
	}
}

func TestLoadMissingKey(t *testing.T) {
	kv := openTestKV(t)
	if _, err := kv.Load(context.Background(), "never-written"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected store.ErrNotFound, got %v", err)
	}
}

func TestPing(t *testing.T) {
	kv := openTestKV(t)
	if err := kv.Ping(context.Background()); err != nil {
		t.Fatalf("Ping error: %v", err)
	}
}
