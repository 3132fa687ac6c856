// Copyright 2026 tusfs Authors
// SPDX-License-Identifier: Apache-2.0

// Package types holds the shared data model of the upload storage engine.
package types

// SizeUnknown marks an absent declared length in creation requests.
const SizeUnknown int64 = -1

// Upload is the durable record of one upload resource.
//
// The metadata artifact persists ID, Size, SizeIsDeferred, MetaData and
// CreatedAt; it is written once at creation and never revised. Offset is
// derived from the data artifact's size and is filled in by reads, never
// persisted.
type Upload struct {
	// ID uniquely identifies the upload within the storage root.
	// Assigned once at creation, immutable.
	ID string `json:"id"`

	// Size is the declared total length in bytes. Meaningful only when
	// SizeIsDeferred is false.
	Size int64 `json:"size"`

	// SizeIsDeferred marks an upload created without a known final size.
	SizeIsDeferred bool `json:"size_is_deferred,omitempty"`

	// Offset is the number of bytes committed to the data artifact.
	Offset int64 `json:"-"`

	// MetaData carries caller-supplied key/value pairs, stored verbatim
	// and never interpreted by the engine.
	MetaData map[string]string `json:"metadata,omitempty"`

	// CreatedAt is the creation time as a unix timestamp.
	CreatedAt int64 `json:"created_at"`
}

// IsComplete reports whether the upload has reached its declared length.
// Deferred uploads are never complete until their length is fixed.
func (u Upload) IsComplete() bool {
	return !u.SizeIsDeferred && u.Offset == u.Size
}
