package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileCache persists layout results under a local directory, one file per
// key. Keys are sharded into subdirectories by hash prefix so a busy cache
// does not pile thousands of files into a single dir.
type FileCache struct {
	dir string
}

// NewFileCache creates the directory if needed and returns a cache over it.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// entry is the on-disk envelope around a cached layout.
type entry struct {
	Layout    []byte    `json:"layout"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Get returns the cached layout bytes for key. Expired or unreadable
// entries are removed and reported as misses so the pipeline recomputes and
// overwrites them.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.entryPath(key)
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if !e.ExpiresAt.IsZero() && time.Now().After(e.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}
	return e.Layout, true, nil
}

// Set writes the layout bytes under key. A zero ttl stores the entry
// without an expiry.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	e := entry{Layout: data}
	if ttl > 0 {
		e.ExpiresAt = time.Now().Add(ttl)
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}

	path := c.entryPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}

// Delete removes the entry for key if present.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	if err := os.Remove(c.entryPath(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Close is a no-op for the file backend.
func (c *FileCache) Close() error { return nil }

// entryPath shards keys by the first two hex chars of their hash:
// <dir>/ab/cdef...json.
func (c *FileCache) entryPath(key string) string {
	sum := Hash([]byte(key))
	return filepath.Join(c.dir, sum[:2], sum[2:]+".json")
}
