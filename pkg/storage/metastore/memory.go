// Copyright 2026 tusfs Authors
// SPDX-License-Identifier: Apache-2.0

package metastore

import (
	"context"
	"sync"

	"github.com/gerdus/tusfs/pkg/types"
)

// Memory is an in-memory MetaStore for testing
type Memory struct {
	mu      sync.RWMutex
	records map[string]types.Upload
}

// NewMemory creates an in-memory metadata store.
func NewMemory() *Memory {
	return &Memory{records: make(map[string]types.Upload)}
}

func (m *Memory) Put(ctx context.Context, u types.Upload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[u.ID] = u
	return nil
}

func (m *Memory) Get(ctx context.Context, id string) (types.Upload, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.records[id]
	return u, ok
}

func (m *Memory) List(ctx context.Context) ([]types.Upload, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	uploads := make([]types.Upload, 0, len(m.records))
	for _, u := range m.records {
		uploads = append(uploads, u)
	}
	return uploads, nil
}

func (m *Memory) Close() error {
	return nil
}
