// Copyright 2026 tusfs Authors
// SPDX-License-Identifier: Apache-2.0

// Package lock serializes operations per upload identifier. The engine
// acquires the lock for the duration of a chunk write so at most one write
// is in flight per upload; without it two overlapping writes for the same
// identifier could interleave their staging and commits and corrupt the
// byte stream.
package lock

import "context"

// UnlockFunc releases a held lock. Safe to call more than once.
type UnlockFunc func()

// Locker provides per-identifier mutual exclusion.
type Locker interface {
	// Lock acquires the lock for id, blocking until it is available or
	// ctx is done.
	Lock(ctx context.Context, id string) (UnlockFunc, error)
}
