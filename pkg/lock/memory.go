// Copyright 2026 tusfs Authors
// SPDX-License-Identifier: Apache-2.0

package lock

import (
	"context"
	"sync"
)

// Memory is an in-process Locker. It is the default for single-process
// deployments; use the Redis locker when several processes share one
// storage root.
type Memory struct {
	mu    sync.Mutex
	locks map[string]*memLock
}

type memLock struct {
	sem  chan struct{}
	refs int
}

// NewMemory creates an in-process locker.
func NewMemory() *Memory {
	return &Memory{locks: make(map[string]*memLock)}
}

func (m *Memory) Lock(ctx context.Context, id string) (UnlockFunc, error) {
	m.mu.Lock()
	l := m.locks[id]
	if l == nil {
		l = &memLock{sem: make(chan struct{}, 1)}
		m.locks[id] = l
	}
	l.refs++
	m.mu.Unlock()

	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		m.release(id, l)
		return nil, ctx.Err()
	}

	var once sync.Once
	unlock := func() {
		once.Do(func() {
			<-l.sem
			m.release(id, l)
		})
	}
	return unlock, nil
}

// release drops one reference and evicts the entry once nobody holds or
// waits for it, keeping the map from growing with dead identifiers.
func (m *Memory) release(id string, l *memLock) {
	m.mu.Lock()
	l.refs--
	if l.refs == 0 {
		delete(m.locks, id)
	}
	m.mu.Unlock()
}
