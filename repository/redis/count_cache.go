package redis

import (
	"context"
	"strconv"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

// CountCache keeps entity counts in Redis for a short TTL so hot count
// queries skip the database. Mutations invalidate eagerly.
type CountCache struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewCountCache creates a Redis-backed count cache.
func NewCountCache(client *redislib.Client, ttl time.Duration) *CountCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &CountCache{
		client: client,
		prefix: "crm:count:",
		ttl:    ttl,
	}
}

// Get returns the cached count and whether it was present. Transport errors
// are reported as a miss so callers fall back to the store.
func (c *CountCache) Get(ctx context.Context, entity string) (int, bool) {
	if c == nil || c.client == nil {
		return 0, false
	}
	result, err := c.client.Get(ctx, c.key(entity)).Result()
	if err != nil {
		return 0, false
	}
	count, err := strconv.Atoi(result)
	if err != nil {
		return 0, false
	}
	return count, true
}

func (c *CountCache) Set(ctx context.Context, entity string, count int) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Set(ctx, c.key(entity), strconv.Itoa(count), c.ttl).Err()
}

func (c *CountCache) Invalidate(ctx context.Context, entities ...string) {
	if c == nil || c.client == nil {
		return
	}
	keys := make([]string, len(entities))
	for i, entity := range entities {
		keys[i] = c.key(entity)
	}
	_ = c.client.Del(ctx, keys...).Err()
}

func (c *CountCache) key(entity string) string {
	return c.prefix + entity
}
