package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/comitanigiacomo/kanso-journal/internal/core/domain"
)

var _ domain.Cache[string] = (*MemoryCache[string])(nil)

const (
	DefaultMemoryCacheSize   = 10000
	DefaultMemoryCacheMaxTTL = time.Hour

	sweepInterval = time.Minute
)

type memoryItem[T any] struct {
	value     T
	expiresAt time.Time
}

// MemoryCache is a process-local cache bounded by entry count. The least recently
// used entry is evicted when full. Entries never outlive maxTTL, and per-entry TTLs
// are swept at most once per minute from Set.
type MemoryCache[T any] struct {
	mu        sync.Mutex
	items     *expirable.LRU[string, memoryItem[T]]
	now       func() time.Time
	nextSweep time.Time
}

func NewMemoryCache[T any]() *MemoryCache[T] {
	return NewMemoryCacheWithLimits[T](DefaultMemoryCacheSize, DefaultMemoryCacheMaxTTL)
}

func NewMemoryCacheWithLimits[T any](size int, maxTTL time.Duration) *MemoryCache[T] {
	if size <= 0 {
		size = DefaultMemoryCacheSize
	}
	if maxTTL <= 0 {
		maxTTL = DefaultMemoryCacheMaxTTL
	}
	return &MemoryCache[T]{
		items: expirable.NewLRU[string, memoryItem[T]](size, nil, maxTTL),
		now:   time.Now,
	}
}

func (c *MemoryCache[T]) Get(_ context.Context, key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	item, ok := c.items.Get(key)
	if !ok {
		return zero, false
	}
	if !c.now().Before(item.expiresAt) {
		c.items.Remove(key)
		return zero, false
	}
	return item.value, true
}

func (c *MemoryCache[T]) Set(_ context.Context, key string, value T, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.sweep(now)
	c.items.Add(key, memoryItem[T]{value: value, expiresAt: now.Add(ttl)})
}

func (c *MemoryCache[T]) DeletePrefix(_ context.Context, prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, k := range c.items.Keys() {
		if strings.HasPrefix(k, prefix) {
			c.items.Remove(k)
		}
	}
}

// Len reports the number of stored entries, expired ones included until swept.
func (c *MemoryCache[T]) Len() int {
	return c.items.Len()
}

// sweep drops expired entries. Caller holds mu.
func (c *MemoryCache[T]) sweep(now time.Time) {
	if now.Before(c.nextSweep) {
		return
	}
	c.nextSweep = now.Add(sweepInterval)

	for _, k := range c.items.Keys() {
		if item, ok := c.items.Peek(k); ok && !now.Before(item.expiresAt) {
			c.items.Remove(k)
		}
	}
}
