package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-journal/internal/core/domain"
)

var _ domain.Cache[string] = (*RedisCache[string])(nil)

// RedisCache stores JSON encoded values in redis. Redis failures degrade to cache misses.
type RedisCache[T any] struct {
	client *redis.Client
}

func NewRedisCache[T any](client *redis.Client) *RedisCache[T] {
	return &RedisCache[T]{client: client}
}

func (c *RedisCache[T]) Get(ctx context.Context, key string) (T, bool) {
	var zero T

	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("[CACHE] Redis read error: %v", err)
		}
		return zero, false
	}

	var out T
	if err := json.Unmarshal(val, &out); err != nil {
		log.Printf("[CACHE] Corrupted data for key %s, cleaning up", key)
		c.client.Del(ctx, key)
		return zero, false
	}
	return out, true
}

func (c *RedisCache[T]) Set(ctx context.Context, key string, value T, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("[CACHE] Failed to encode key %s: %v", key, err)
		return
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Printf("[CACHE] Redis set error: %v", err)
	}
}

// globEscaper makes a key prefix match literally in SCAN MATCH.
var globEscaper = strings.NewReplacer(`\`, `\\`, "*", `\*`, "?", `\?`, "[", `\[`, "]", `\]`)

func matchPrefix(prefix string) string {
	return globEscaper.Replace(prefix) + "*"
}

func (c *RedisCache[T]) DeletePrefix(ctx context.Context, prefix string) {
	iter := c.client.Scan(ctx, 0, matchPrefix(prefix), 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("[CACHE] Failed to scan prefix %s: %v", prefix, err)
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("[CACHE] Failed to invalidate prefix %s: %v", prefix, err)
	}
}
