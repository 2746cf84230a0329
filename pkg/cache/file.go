package cache

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	errs "github.com/matzehuels/rorostab/pkg/errors"
	"github.com/matzehuels/rorostab/pkg/observability"
)

// FileCache keeps one JSON file per key on local disk for the CLI.
//
// Entries are grouped by key type, so a result key lands in
//
//	<dir>/result/<h[:2]>/<h[2:]>.json
//
// where h is the SHA-256 of the key. Expired and unreadable entries are
// removed on read and count as misses.
type FileCache struct {
	dir string
}

// NewFileCache opens (and creates if needed) a file cache rooted at dir.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "create cache directory %s", dir)
	}
	return &FileCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *FileCache) Dir() string {
	return c.dir
}

// fileEntry is the on-disk form of a cached value.
type fileEntry struct {
	Key       string    `json:"key"`
	StoredAt  time.Time `json:"stored_at"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
	Data      []byte    `json:"data"`
}

func (e *fileEntry) expired(now time.Time) bool {
	return !e.ExpiresAt.IsZero() && now.After(e.ExpiresAt)
}

// Get returns the entry for key. A stale or corrupt entry is deleted and
// reported as a miss.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	hooks := observability.Cache()
	path := c.path(key)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		hooks.OnCacheMiss(ctx, keyType(key))
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errs.Wrap(errs.ErrCodeInternal, err, "read cache entry")
	}

	var e fileEntry
	if err := json.Unmarshal(raw, &e); err != nil || e.Key != key || e.expired(time.Now()) {
		_ = os.Remove(path)
		hooks.OnCacheMiss(ctx, keyType(key))
		return nil, false, nil
	}
	hooks.OnCacheHit(ctx, keyType(key))
	return e.Data, true, nil
}

// Set writes data under key, replacing any previous entry. A zero ttl
// never expires.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	now := time.Now()
	e := fileEntry{Key: key, StoredAt: now, Data: data}
	if ttl > 0 {
		e.ExpiresAt = now.Add(ttl)
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "encode cache entry")
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidPath, err, "create cache directory")
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidPath, err, "write cache entry")
	}
	observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	return nil
}

// Delete removes key. A missing entry is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !os.IsNotExist(err) {
		return errs.Wrap(errs.ErrCodeInternal, err, "delete cache entry")
	}
	return nil
}

// Count returns the number of stored entries, expired ones included.
func (c *FileCache) Count() (int, error) {
	n := 0
	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".json" {
			n++
		}
		return nil
	})
	if err != nil {
		return 0, errs.Wrap(errs.ErrCodeInternal, err, "scan cache directory")
	}
	return n, nil
}

// Clear removes every entry and leaves an empty cache root.
func (c *FileCache) Clear() error {
	if err := os.RemoveAll(c.dir); err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "clear cache")
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidPath, err, "create cache directory %s", c.dir)
	}
	return nil
}

// Close is a no-op.
func (c *FileCache) Close() error {
	return nil
}

func (c *FileCache) path(key string) string {
	h := Hash([]byte(key))
	return filepath.Join(c.dir, keyType(key), h[:2], h[2:]+".json")
}

var _ Cache = (*FileCache)(nil)
