// Package filesystem provides a store.KV implementation backed by the local
// filesystem: one file per key, replaced atomically via write-to-temp plus
// rename so a crash mid-write never leaves a torn snapshot.
package filesystem

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/Tpepper2001/noteboard/internal/store"
)

var _ store.KV = (*KV)(nil)

// KV implements store.KV on a directory of snapshot files.
type KV struct {
	root string
}

// New returns a filesystem KV rooted at dir. The directory must already
// exist.
func New(root string) (*KV, error) {
	fi, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return nil, errors.New("snapshot root is not a directory")
	}
	return &KV{root: root}, nil
}

// path maps a snapshot key to a file name. Keys contain ':' separators,
// which are flattened so names stay portable.
func (kv *KV) path(key string) string {
	name := strings.NewReplacer(":", "_", "/", "_").Replace(key)
	return filepath.Join(kv.root, name+".json")
}

// Save atomically replaces the value stored under key.
func (kv *KV) Save(_ context.Context, key string, value []byte) error {
	dst := kv.path(key)
	tmp, err := os.CreateTemp(kv.root, filepath.Base(dst)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err = tmp.Write(value); err == nil {
		err = tmp.Sync()
	}
	if cErr := tmp.Close(); err == nil {
		err = cErr
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	// Rename within the same directory is the atomic replace point.
	if err := os.Rename(tmpName, dst); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

// Load returns the value stored under key, or store.ErrNotFound.
func (kv *KV) Load(_ context.Context, key string) ([]byte, error) {
	raw, err := os.ReadFile(kv.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return raw, nil
}

// Ping reports whether the root directory is still readable.
func (kv *KV) Ping(_ context.Context) error {
	_, err := os.ReadDir(kv.root)
	return err
}
