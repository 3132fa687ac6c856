// Copyright 2026 tusfs Authors
// SPDX-License-Identifier: Apache-2.0

package metastore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gerdus/tusfs/pkg/logger"
	"github.com/gerdus/tusfs/pkg/types"
)

// InfoSuffix is the filename suffix of metadata sidecar artifacts.
const InfoSuffix = ".info"

// File stores each record as a JSON sidecar at <root>/<id>.info, next to
// the upload's data artifact. Writes go to a temporary file in the same
// directory and are published with an atomic rename, so readers never see
// a partial record.
type File struct {
	root string
}

// NewFile creates a sidecar metadata store rooted at dir.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, fmt.Errorf("root directory required for file metastore")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create root: %w", err)
	}
	return &File{root: dir}, nil
}

func (m *File) infoPath(id string) string {
	return filepath.Join(m.root, id+InfoSuffix)
}

func (m *File) Put(ctx context.Context, u types.Upload) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	tmp, err := os.CreateTemp(m.root, u.ID+InfoSuffix+".*")
	if err != nil {
		return fmt.Errorf("create temp record: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write record: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("sync record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close record: %w", err)
	}

	if err := os.Rename(tmp.Name(), m.infoPath(u.ID)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("publish record: %w", err)
	}
	return nil
}

func (m *File) Get(ctx context.Context, id string) (types.Upload, bool) {
	data, err := os.ReadFile(m.infoPath(id))
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

func (m *File) List(ctx context.Context) ([]types.Upload, error) {
	entries, err := os.ReadDir(m.root)
	if err != nil {
		return nil, fmt.Errorf("read root: %w", err)
	}

	var uploads []types.Upload
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, InfoSuffix) {
			continue
		}
		id := strings.TrimSuffix(name, InfoSuffix)
		if u, ok := m.Get(ctx, id); ok {
			uploads = append(uploads, u)
		}
	}
	return uploads, nil
}

func (m *File) Close() error {
	return nil
}
