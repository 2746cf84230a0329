package cache

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/rorostab/pkg/observability"
)

// NullCache stores nothing. It backs --no-cache runs: every lookup is
// reported as a miss so hook counts still show how often a result was
// recomputed.
type NullCache struct {
	logger *log.Logger
}

// NewNullCache returns a cache that stores nothing and logs skipped
// operations to logger at debug level. A nil logger discards them.
func NewNullCache(logger *log.Logger) *NullCache {
	return &NullCache{logger: logger}
}

func (c *NullCache) log() *log.Logger {
	if c.logger == nil {
		return log.New(io.Discard)
	}
	return c.logger
}

// Get always misses.
func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	observability.Cache().OnCacheMiss(ctx, keyType(key))
	c.log().Debug("cache disabled, recomputing", "type", keyType(key))
	return nil, false, nil
}

// Set discards data.
func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.log().Debug("cache disabled, result not stored", "type", keyType(key), "bytes", len(data))
	return nil
}

// Delete has nothing to remove.
func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Close has nothing to release.
func (c *NullCache) Close() error {
	return nil
}

var _ Cache = (*NullCache)(nil)
