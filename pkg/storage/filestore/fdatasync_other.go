// Copyright 2026 tusfs Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !linux

package filestore

import "os"

// fdatasync falls back to a full fsync on platforms without fdatasync(2).
func fdatasync(f *os.File) error {
	return f.Sync()
}

// preallocate is a no-op outside linux.
func preallocate(f *os.File, size int64) {}
