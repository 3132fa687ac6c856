// Copyright 2026 tusfs Authors
// SPDX-License-Identifier: Apache-2.0

package metastore

import (
	"context"
	"encoding/json"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/gerdus/tusfs/pkg/logger"
	"github.com/gerdus/tusfs/pkg/types"
)

// LevelDB stores records in a LevelDB database instead of per-upload
// sidecar files. Suited to roots with very large upload counts where one
// inode per record is too expensive.
type LevelDB struct {
	db  *leveldb.DB
	dir string

	// Records are the authority for declared length and the deferred
	// flag, so every write is fsynced.
	writeOpts *opt.WriteOptions
}

// NewLevelDB opens (or recovers) a LevelDB metadata store at dir.
func NewLevelDB(dir string) (*LevelDB, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if errors.IsCorrupted(err) {
		db, err = leveldb.RecoverFile(dir, nil)
	}
	if err != nil {
		return nil, err
	}
	return &LevelDB{
		db:        db,
		dir:       dir,
		writeOpts: &opt.WriteOptions{Sync: true},
	}, nil
}

func (m *LevelDB) Put(ctx context.Context, u types.Upload) error {
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return m.db.Put([]byte(u.ID), data, m.writeOpts)
}

func (m *LevelDB) Get(ctx context.Context, id string) (types.Upload, bool) {
	data, err := m.db.Get([]byte(id), nil)
	if err != nil {
		return types.Upload{}, false
	}

	var u types.Upload
	if err := json.Unmarshal(data, &u); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Str("upload_id", id).Msg("unreadable metadata record")
		return types.Upload{}, false
	}
	return u, true
}

func (m *LevelDB) List(ctx context.Context) ([]types.Upload, error) {
	iter := m.db.NewIterator(nil, nil)
	defer iter.Release()

	var uploads []types.Upload
	for iter.Next() {
		var u types.Upload
		if err := json.Unmarshal(iter.Value(), &u); err != nil {
			logger.Ctx(ctx).Warn().Err(err).Str("upload_id", string(iter.Key())).Msg("skipping unreadable record")
			continue
		}
		uploads = append(uploads, u)
	}
	return uploads, iter.Error()
}

func (m *LevelDB) Close() error {
	return m.db.Close()
}
