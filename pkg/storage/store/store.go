// Copyright 2026 tusfs Authors
// SPDX-License-Identifier: Apache-2.0

// Package store defines the storage contract consumed by the protocol
// layer. The filesystem engine in pkg/storage/filestore is one backend;
// alternatives plug in behind the same interface.
package store

import (
	"context"
	"io"

	"github.com/gerdus/tusfs/pkg/types"
)

// CreateOptions carries the caller-supplied attributes of a new upload.
// Exactly one of a declared length (Size >= 0) or SizeIsDeferred must be
// supplied.
type CreateOptions struct {
	// Size is the declared total length in bytes. types.SizeUnknown when
	// not supplied.
	Size int64

	// SizeIsDeferred defers fixing the total length to a later request.
	SizeIsDeferred bool

	// MetaData is an opaque blob stored verbatim with the upload.
	MetaData map[string]string
}

// Store is the resumable-upload storage contract.
type Store interface {
	// Create allocates a new upload resource and returns its record.
	Create(ctx context.Context, opts CreateOptions) (types.Upload, error)

	// Write commits the bytes from src at offset, optionally verifying
	// them against a checksum declaration of the form
	// "<algorithm> <base64-digest>". Returns the new offset.
	Write(ctx context.Context, id string, offset int64, src io.Reader, checksum string) (int64, error)

	// GetOffset returns the upload record merged with the currently
	// persisted offset.
	GetOffset(ctx context.Context, id string) (types.Upload, error)
}
