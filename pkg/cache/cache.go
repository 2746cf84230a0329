// Package cache stores serialized calculation results keyed by the content
// of their inputs.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per key under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for several workstations
//     checking the same loading conditions
//   - [NullCache]: stores nothing, used when caching is disabled
//
// Keys are built by a [Keyer] from content hashes (see [Hash]) so that a
// changed table, item list or solver option never hits a stale entry.
//
// Every backend reports hits, misses and writes to the cache hooks of
// package observability, tagged with the key type (the key prefix before
// the first colon, e.g. "result").
package cache

import (
	"context"
	"strings"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the stored value and whether the key was present.
	// A missing or expired key is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// keyTypeOther tags keys that carry no "type:" prefix.
const keyTypeOther = "other"

// keyType returns the prefix of key up to the first colon.
func keyType(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return keyTypeOther
}
