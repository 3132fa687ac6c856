// Copyright 2026 tusfs Authors
// SPDX-License-Identifier: Apache-2.0

// Package filestore implements the resumable-upload storage contract over
// a plain filesystem directory. Each upload owns two durable artifacts:
// the data artifact at <root>/<id> holding the received bytes, and a
// metadata sidecar at <root>/<id>.info. The data artifact's size is the
// authority for the current offset; the sidecar is the authority for the
// declared length, the deferred flag and the opaque metadata blob.
package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gerdus/tusfs/pkg/events"
	"github.com/gerdus/tusfs/pkg/idgen"
	"github.com/gerdus/tusfs/pkg/lock"
	"github.com/gerdus/tusfs/pkg/logger"
	"github.com/gerdus/tusfs/pkg/storage/metastore"
	"github.com/gerdus/tusfs/pkg/storage/store"
	"github.com/gerdus/tusfs/pkg/types"
	"github.com/gerdus/tusfs/pkg/uperr"
)

// stagingSuffix is the filename suffix of in-flight chunk artifacts.
const stagingSuffix = ".chunk"

// Config configures a FileStore. Only Root is required; zero-value fields
// fall back to the sidecar metastore, UUID identifiers, an in-process
// locker and a noop emitter.
type Config struct {
	// Root is the storage directory. Created if absent.
	Root string

	// Meta overrides the metadata store.
	Meta metastore.MetaStore

	// IDs overrides the identifier generator.
	IDs idgen.Generator

	// Locks overrides the per-upload locker.
	Locks lock.Locker

	// Events receives created/complete notifications.
	Events *events.Emitter
}

// FileStore is the filesystem-backed upload storage engine.
type FileStore struct {
	root   string
	meta   metastore.MetaStore
	ids    idgen.Generator
	locks  lock.Locker
	events *events.Emitter
}

var _ store.Store = (*FileStore)(nil)

// New creates a FileStore rooted at cfg.Root.
func New(cfg Config) (*FileStore, error) {
	if cfg.Root == "" {
		return nil, fmt.Errorf("root directory required")
	}
	if err := os.MkdirAll(cfg.Root, 0755); err != nil {
		return nil, fmt.Errorf("create root: %w", err)
	}

	meta := cfg.Meta
	if meta == nil {
		var err error
		meta, err = metastore.NewFile(cfg.Root)
		if err != nil {
			return nil, err
		}
	}

	ids := cfg.IDs
	if ids == nil {
		ids = idgen.NewUUID()
	}

	locks := cfg.Locks
	if locks == nil {
		locks = lock.NewMemory()
	}

	emitter := cfg.Events
	if emitter == nil {
		emitter = events.NoopEmitter()
	}

	return &FileStore{
		root:   cfg.Root,
		meta:   meta,
		ids:    ids,
		locks:  locks,
		events: emitter,
	}, nil
}

// Root returns the storage directory.
func (fs *FileStore) Root() string {
	return fs.root
}

// Close releases the metadata store.
func (fs *FileStore) Close() error {
	return fs.meta.Close()
}

func (fs *FileStore) dataPath(id string) string {
	return filepath.Join(fs.root, id)
}

func (fs *FileStore) stagingPath(id string) string {
	return filepath.Join(fs.root, id+stagingSuffix)
}

// Create allocates a new upload: an empty data artifact plus its durable
// metadata record. Exactly one of a declared length or the deferred flag
// must be supplied. On any storage failure no partial artifacts remain.
func (fs *FileStore) Create(ctx context.Context, opts store.CreateOptions) (types.Upload, error) {
	const op = "filestore.Create"

	hasSize := opts.Size >= 0
	if hasSize == opts.SizeIsDeferred {
		return types.Upload{}, uperr.New(uperr.KindInvalidLength, op,
			"exactly one of a declared length or the deferred flag must be supplied")
	}

	id, err := fs.ids.Generate(ctx)
	if err != nil {
		return types.Upload{}, uperr.Wrap(uperr.KindIdentifierGeneration, op, err)
	}

	f, err := os.OpenFile(fs.dataPath(id), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return types.Upload{}, uperr.Wrap(uperr.KindStorageWrite, op, err)
	}
	if hasSize && opts.Size > 0 {
		// Advisory: surfaces ENOSPC early and keeps blocks contiguous.
		preallocate(f, opts.Size)
	}
	if err := f.Close(); err != nil {
		os.Remove(fs.dataPath(id))
		return types.Upload{}, uperr.Wrap(uperr.KindStorageWrite, op, err)
	}

	u := types.Upload{
		ID:             id,
		SizeIsDeferred: opts.SizeIsDeferred,
		MetaData:       opts.MetaData,
		CreatedAt:      time.Now().Unix(),
	}
	if hasSize {
		u.Size = opts.Size
	}

	if err := fs.meta.Put(ctx, u); err != nil {
		os.Remove(fs.dataPath(id))
		return types.Upload{}, uperr.Wrap(uperr.KindStorageWrite, op, err)
	}

	UploadsCreated.Inc()
	logger.Ctx(ctx).Debug().
		Str("upload_id", id).
		Int64("size", u.Size).
		Bool("size_is_deferred", u.SizeIsDeferred).
		Msg("upload created")

	fs.events.EmitUploadCreated(ctx, u)

	// A zero-length upload is complete the moment it exists; no write
	// will ever fire the threshold check for it.
	if hasSize && opts.Size == 0 {
		UploadsCompleted.Inc()
		fs.events.EmitUploadComplete(ctx, u)
	}

	return u, nil
}

// GetOffset reconciles the data artifact's size with the metadata record
// into the upload's current view.
func (fs *FileStore) GetOffset(ctx context.Context, id string) (types.Upload, error) {
	return fs.resolve(ctx, id)
}

// resolve merges filesystem status with the metadata record. The error
// mapping distinguishes an upload that never existed from one whose data
// artifact disappeared underneath its metadata.
func (fs *FileStore) resolve(ctx context.Context, id string) (types.Upload, error) {
	const op = "filestore.GetOffset"

	fi, err := os.Stat(fs.dataPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			if _, ok := fs.meta.Get(ctx, id); ok {
				return types.Upload{}, uperr.Newf(uperr.KindArtifactVanished, op,
					"data artifact for upload %s is gone", id)
			}
			return types.Upload{}, uperr.Newf(uperr.KindNotFound, op, "no upload %s", id)
		}
		return types.Upload{}, fmt.Errorf("stat data artifact: %w", err)
	}
	if fi.IsDir() {
		return types.Upload{}, uperr.Newf(uperr.KindNotFound, op, "no upload %s", id)
	}

	u, ok := fs.meta.Get(ctx, id)
	if !ok {
		return types.Upload{}, uperr.Newf(uperr.KindNotFound, op, "no upload %s", id)
	}

	u.Offset = fi.Size()
	return u, nil
}

// CleanStaging removes staging artifacts whose last modification is older
// than maxAge. Staging files are scoped to one write attempt; anything
// old enough to pass the cutoff was left behind by a crash. Returns the
// number of files removed.
func (fs *FileStore) CleanStaging(ctx context.Context, maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(fs.root)
	if err != nil {
		return 0, fmt.Errorf("read root: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), stagingSuffix) {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(fs.root, entry.Name())); err != nil {
			logger.Ctx(ctx).Warn().Err(err).Str("file", entry.Name()).Msg("failed to remove stale staging artifact")
			continue
		}
		removed++
		StagingCleaned.Inc()
	}
	return removed, nil
}
