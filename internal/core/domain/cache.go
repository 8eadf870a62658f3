package domain

import (
	"context"
	"time"
)

// Cache is a caller-owned, time-boxed key/value cache. Entries are advisory:
// a miss must always be recoverable from the underlying store.
type Cache[T any] interface {
	Get(ctx context.Context, key string) (T, bool)
	Set(ctx context.Context, key string, value T, ttl time.Duration)
	DeletePrefix(ctx context.Context, prefix string)
}
