// Copyright 2026 tusfs Authors
// SPDX-License-Identifier: Apache-2.0

package filestore

import (
	"context"
	"crypto/sha1"
	"hash"
	"io"
	"os"

	"github.com/gerdus/tusfs/pkg/logger"
	"github.com/gerdus/tusfs/pkg/types"
	"github.com/gerdus/tusfs/pkg/uperr"
)

// Write commits a chunk at the supplied offset using a two-phase
// protocol: the bytes are first staged into <root>/<id>.chunk (hashing
// along the way when a checksum declaration is present), verified, and
// only then copied into the data artifact. A failure in any phase leaves
// the data artifact byte-for-byte unchanged.
//
// The per-upload lock is held for the whole call, so at most one write is
// in flight per identifier and the staging path cannot collide with a
// concurrent attempt for the same upload.
func (fs *FileStore) Write(ctx context.Context, id string, offset int64, src io.Reader, checksum string) (int64, error) {
	const op = "filestore.Write"

	if offset < 0 {
		return 0, uperr.Newf(uperr.KindOffsetMismatch, op, "negative offset %d", offset)
	}

	var declared *types.Checksum
	if checksum != "" {
		var err error
		declared, err = types.ParseChecksum(checksum)
		if err != nil {
			return 0, err
		}
	}

	unlock, err := fs.locks.Lock(ctx, id)
	if err != nil {
		return 0, err
	}
	defer unlock()

	cur, err := fs.resolve(ctx, id)
	if err != nil {
		return 0, err
	}
	if offset != cur.Offset {
		ChunkWrites.WithLabelValues("offset_mismatch").Inc()
		return 0, uperr.Newf(uperr.KindOffsetMismatch, op,
			"supplied offset %d, current offset %d", offset, cur.Offset)
	}

	// Stage
	var hasher hash.Hash
	if declared != nil {
		hasher = sha1.New()
	}
	n, err := fs.stageChunk(id, src, hasher)
	if err != nil {
		ChunkWrites.WithLabelValues("failed").Inc()
		return 0, err
	}
	staged := fs.stagingPath(id)

	// Verify
	if declared != nil && !declared.Matches(hasher.Sum(nil)) {
		os.Remove(staged)
		ChunkWrites.WithLabelValues("checksum_mismatch").Inc()
		ChecksumFailures.Inc()
		return 0, uperr.New(uperr.KindChecksumMismatch, op, "staged bytes do not match declared digest")
	}

	if !cur.SizeIsDeferred && offset+n > cur.Size {
		os.Remove(staged)
		ChunkWrites.WithLabelValues("failed").Inc()
		return 0, uperr.Newf(uperr.KindSizeExceeded, op,
			"chunk ends at %d, declared length is %d", offset+n, cur.Size)
	}

	// Commit
	if err := fs.commitChunk(id, staged, offset); err != nil {
		ChunkWrites.WithLabelValues("failed").Inc()
		return 0, err
	}

	newOffset := offset + n
	ChunkWrites.WithLabelValues("committed").Inc()
	BytesCommitted.Add(float64(n))
	logger.Ctx(ctx).Debug().
		Str("upload_id", id).
		Int64("offset", offset).
		Int64("bytes", n).
		Msg("chunk committed")

	// Completion check. n > 0 guards re-firing when a completed upload
	// receives a trailing empty-body write at its final offset.
	if !cur.SizeIsDeferred && newOffset == cur.Size && n > 0 {
		cur.Offset = newOffset
		UploadsCompleted.Inc()
		fs.events.EmitUploadComplete(ctx, cur)
	}

	return newOffset, nil
}

// stageChunk copies src into the staging artifact, feeding hasher when
// verification is required, and returns the byte count. On any failure
// the partial staging artifact is discarded.
func (fs *FileStore) stageChunk(id string, src io.Reader, hasher hash.Hash) (int64, error) {
	const op = "filestore.Write"

	path := fs.stagingPath(id)

	// O_TRUNC rather than O_EXCL: the lock guarantees exclusivity, and a
	// leftover from a crashed attempt must not wedge the upload.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return 0, uperr.Wrap(uperr.KindStorageWrite, op, err)
	}

	w := io.Writer(f)
	if hasher != nil {
		w = io.MultiWriter(f, hasher)
	}

	n, err := io.Copy(w, src)
	if err != nil {
		f.Close()
		os.Remove(path)
		return 0, uperr.Wrap(uperr.KindStorageWrite, op, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return 0, uperr.Wrap(uperr.KindStorageWrite, op, err)
	}
	return n, nil
}

// commitChunk writes the staged bytes into the data artifact at offset
// and removes the staging artifact.
func (fs *FileStore) commitChunk(id, staged string, offset int64) error {
	const op = "filestore.Write"

	sf, err := os.Open(staged)
	if err != nil {
		return uperr.Wrap(uperr.KindStorageWrite, op, err)
	}
	defer sf.Close()

	df, err := os.OpenFile(fs.dataPath(id), os.O_WRONLY, 0644)
	if err != nil {
		return uperr.Wrap(uperr.KindStorageWrite, op, err)
	}

	if _, err := df.Seek(offset, io.SeekStart); err != nil {
		df.Close()
		return uperr.Wrap(uperr.KindStorageWrite, op, err)
	}
	if _, err := io.Copy(df, sf); err != nil {
		df.Close()
		return uperr.Wrap(uperr.KindStorageWrite, op, err)
	}
	if err := fdatasync(df); err != nil {
		df.Close()
		return uperr.Wrap(uperr.KindStorageWrite, op, err)
	}
	if err := df.Close(); err != nil {
		return uperr.Wrap(uperr.KindStorageWrite, op, err)
	}

	os.Remove(staged)
	return nil
}
