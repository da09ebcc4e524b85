// Package cache provides an optional Redis-backed result cache for the
// gateway. Identical texts classified with identical options hit the cache
// instead of re-running the detector. A nil *Cache is a valid no-op, so
// callers never branch on whether caching is configured.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/saferoom-id/judolguard/pkg/detector"
)

// keyPrefix namespaces cache entries so a shared Redis can host other apps.
const keyPrefix = "judolguard:result:"

// Cache wraps a Redis client with the result-entry encoding.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New connects to Redis and verifies the connection. An empty addr returns
// (nil, nil): caching disabled, not an error.
func New(ctx context.Context, addr, password string, db int, ttl time.Duration) (*Cache, error) {
	if addr == "" {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("cache: ping %s: %w", addr, err)
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Cache{rdb: rdb, ttl: ttl}, nil
}

// Key derives the cache key from the text plus an options fingerprint, so a
// sensitivity or language change never serves a stale verdict.
func Key(text string, opts *detector.Options) string {
	h := sha256.New()
	h.Write([]byte(text))
	h.Write([]byte{0})
	if opts != nil {
		// Options is plain data; JSON is a stable enough fingerprint here.
		if b, err := json.Marshal(opts); err == nil {
			h.Write(b)
		}
	}
	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached result for the key, or nil on miss. Transport errors
// degrade to a miss.
func (c *Cache) Get(ctx context.Context, key string) *detector.Result {
	if c == nil {
		return nil
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var res detector.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil
	}
	return &res
}

// Set stores a result under the key with the configured TTL. Failures are
// returned for logging but are never fatal to the request.
func (c *Cache) Set(ctx context.Context, key string, res *detector.Result) error {
	if c == nil || res == nil {
		return nil
	}
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("cache: encode result: %w", err)
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache: set: %w", err)
	}
	return nil
}

// Close releases the Redis connection.
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
