package cache

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis backs the log range cache and the rate limiter. Both degrade when it is
// slow, so timeouts stay short.
const (
	redisDialTimeout = 5 * time.Second
	redisIOTimeout   = 2 * time.Second
	redisPingTimeout = 5 * time.Second
	redisClientName  = "kanso-journal"
)

// NewRedisClient connects and pings once. The client is closed on failure.
func NewRedisClient(ctx context.Context, host, port, password string, dbIndex int) (*redis.Client, error) {
	addr := net.JoinHostPort(host, port)

	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           dbIndex,
		ClientName:   redisClientName,
		DialTimeout:  redisDialTimeout,
		ReadTimeout:  redisIOTimeout,
		WriteTimeout: redisIOTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis %s (db %d) unreachable: %w", addr, dbIndex, err)
	}
	return rdb, nil
}
