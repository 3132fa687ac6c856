// Copyright 2026 tusfs Authors
// SPDX-License-Identifier: Apache-2.0

package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	s := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})
	t.Cleanup(func() { client.Close() })
	return s, client
}

func TestRedis_LockUnlock(t *testing.T) {
	s, client := setupTestRedis(t)

	l := NewRedis(client, RedisConfig{})
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, s.Exists("tusfs:lock:u1"))

	unlock()
	assert.False(t, s.Exists("tusfs:lock:u1"))
}

func TestRedis_SecondAcquirerBlocksUntilRelease(t *testing.T) {
	_, client := setupTestRedis(t)

	l := NewRedis(client, RedisConfig{RetryInterval: 5 * time.Millisecond})
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "u1")
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		unlock2, err := l.Lock(ctx, "u1")
		assert.NoError(t, err)
		unlock2()
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second acquirer got the lease while it was held")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second acquirer never got the released lease")
	}
}

func TestRedis_ContextCanceledWhileWaiting(t *testing.T) {
	_, client := setupTestRedis(t)

	l := NewRedis(client, RedisConfig{RetryInterval: 5 * time.Millisecond})

	unlock, err := l.Lock(context.Background(), "u1")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err = l.Lock(ctx, "u1")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRedis_StaleUnlockDoesNotReleaseNewHolder(t *testing.T) {
	s, client := setupTestRedis(t)

	l := NewRedis(client, RedisConfig{TTL: time.Second, RetryInterval: 5 * time.Millisecond})
	ctx := context.Background()

	staleUnlock, err := l.Lock(ctx, "u1")
	require.NoError(t, err)

	// Lease expires as if the holder crashed mid-write.
	s.FastForward(2 * time.Second)

	unlock, err := l.Lock(ctx, "u1")
	require.NoError(t, err)
	defer unlock()

	// The crashed holder's deferred release must not free the new lease.
	staleUnlock()
	assert.True(t, s.Exists("tusfs:lock:u1"))
}
