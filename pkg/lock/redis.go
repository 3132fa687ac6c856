// Copyright 2026 tusfs Authors
// SPDX-License-Identifier: Apache-2.0

package lock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/gerdus/tusfs/pkg/logger"
)

// releaseScript deletes the lease only when the caller still owns it, so
// an expired-and-reacquired lease is never released by the old holder.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisConfig configures the Redis lease locker.
type RedisConfig struct {
	// Prefix is prepended to lease keys. Defaults to "tusfs:lock:".
	Prefix string

	// TTL bounds how long a crashed holder can block other writers.
	// Defaults to 30s; must exceed the longest expected chunk write.
	TTL time.Duration

	// RetryInterval is the polling interval while waiting for a held
	// lease. Defaults to 100ms.
	RetryInterval time.Duration
}

// Redis is a Locker backed by Redis leases (SET NX with expiry). Use it
// when multiple processes write to a shared storage root.
type Redis struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	retry  time.Duration
}

// NewRedis creates a Redis-backed locker.
func NewRedis(client redis.UniversalClient, cfg RedisConfig) *Redis {
	if cfg.Prefix == "" {
		cfg.Prefix = "tusfs:lock:"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 30 * time.Second
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = 100 * time.Millisecond
	}
	return &Redis{
		client: client,
		prefix: cfg.Prefix,
		ttl:    cfg.TTL,
		retry:  cfg.RetryInterval,
	}
}

func (r *Redis) Lock(ctx context.Context, id string) (UnlockFunc, error) {
	key := r.prefix + id
	token := uuid.NewString()

	ticker := time.NewTicker(r.retry)
	defer ticker.Stop()

	for {
		ok, err := r.client.SetNX(ctx, key, token, r.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return r.unlockFunc(key, token), nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (r *Redis) unlockFunc(key, token string) UnlockFunc {
	return func() {
		// Release must not inherit a canceled request context.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := releaseScript.Run(ctx, r.client, []string{key}, token).Err(); err != nil && err != redis.Nil {
			logger.Warn().Err(err).Str("key", key).Msg("failed to release upload lease")
		}
	}
}
