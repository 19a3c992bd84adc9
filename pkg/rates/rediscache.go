package rates

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache is a RegionCache backed by Redis, for deployments where
// checkout sessions span processes. Entries still expire with the
// session TTL; nothing is stored durably.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed region cache.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) key(sessionID, postcode string) string {
	return fmt.Sprintf("fastrac:region:%s:%s", sessionID, postcode)
}

// Get returns the cached region id for the session's postcode. Any Redis
// error is treated as a miss; the resolver simply re-queries the remote.
func (c *RedisCache) Get(ctx context.Context, sessionID, postcode string) (string, bool) {
	val, err := c.client.Get(ctx, c.key(sessionID, postcode)).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// Put stores a resolved region id. Write failures are ignored; the cache
// is an optimization, not a source of truth.
func (c *RedisCache) Put(ctx context.Context, sessionID, postcode, regionID string) {
	c.client.Set(ctx, c.key(sessionID, postcode), regionID, c.ttl)
}

var _ RegionCache = (*RedisCache)(nil)
