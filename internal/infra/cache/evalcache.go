package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// EvalCache memoizes generated evaluation texts in redis with a fixed TTL.
// Cache trouble is never an error for callers; a miss is returned instead.
type EvalCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewEvalCache(client *redis.Client, ttl time.Duration) *EvalCache {
	return &EvalCache{client: client, ttl: ttl}
}

func (c *EvalCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("eval cache get %s: %v", key, err)
		}
		return "", false
	}
	return val, true
}

func (c *EvalCache) Set(ctx context.Context, key, value string) {
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		log.Printf("eval cache set %s: %v", key, err)
	}
}
