package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	errs "github.com/matzehuels/rorostab/pkg/errors"
	"github.com/matzehuels/rorostab/pkg/observability"
)

// ErrUnavailable is wrapped by [NewRedisCache] when the server does not
// answer. Callers fall back to a local cache on it.
var ErrUnavailable = errors.New("cache backend unavailable")

// pingAttempts bounds the connection check in [NewRedisCache]; the delay
// between attempts starts at pingDelay and doubles.
const pingAttempts = 3

var pingDelay = 200 * time.Millisecond

// RedisCache stores entries in Redis, shared by every workstation pointed
// at the same server. Expiry is delegated to Redis TTLs.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache connects to the Redis instance at url
// (redis://[user:pass@]host:port/db). A malformed URL is INVALID_INPUT; a
// server that does not answer PING after a few attempts wraps
// [ErrUnavailable].
func NewRedisCache(ctx context.Context, url string) (*RedisCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid redis url")
	}
	client := redis.NewClient(opt)
	if err := ping(ctx, client); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &RedisCache{client: client}, nil
}

// NewRedisCacheFromClient wraps an existing client.
func NewRedisCacheFromClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func ping(ctx context.Context, client *redis.Client) error {
	delay := pingDelay
	var err error
	for i := 0; i < pingAttempts; i++ {
		if err = client.Ping(ctx).Err(); err == nil {
			return nil
		}
		if i == pingAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, client.Options().Addr, err)
}

// Get retrieves a value from Redis.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		observability.Cache().OnCacheMiss(ctx, keyType(key))
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	observability.Cache().OnCacheHit(ctx, keyType(key))
	return data, true, nil
}

// Set stores a value in Redis. A zero ttl keeps the key until deleted.
func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return err
	}
	observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	return nil
}

// Delete removes a key from Redis.
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Close closes the Redis client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

var _ Cache = (*RedisCache)(nil)
