// Copyright 2026 tusfs Authors
// SPDX-License-Identifier: Apache-2.0

// Package metastore persists upload records. The filesystem sidecar
// implementation is authoritative for the engine's on-disk layout; the
// LevelDB and memory variants serve embedded and testing deployments.
package metastore

import (
	"context"
	"io"

	"github.com/gerdus/tusfs/pkg/types"
)

// MetaStore stores one durable record per upload.
type MetaStore interface {
	io.Closer

	// Put persists the record atomically: a concurrent Get never
	// observes a partially written record.
	Put(ctx context.Context, u types.Upload) error

	// Get loads the record for id. ok is false when the record is absent
	// or unreadable; absence is a normal condition, not a fault.
	Get(ctx context.Context, id string) (u types.Upload, ok bool)

	// List returns all stored records, in no particular order.
	List(ctx context.Context) ([]types.Upload, error)
}
