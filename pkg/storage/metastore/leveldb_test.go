// Copyright 2026 tusfs Authors
// SPDX-License-Identifier: Apache-2.0

package metastore

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerdus/tusfs/pkg/types"
)

func TestLevelDB_PutGet_RoundTrip(t *testing.T) {
	t.Parallel()

	m, err := NewLevelDB(t.TempDir())
	require.NoError(t, err)
	defer m.Close()

	ctx := context.Background()
	want := types.Upload{
		ID:        "u1",
		Size:      42,
		MetaData:  map[string]string{"filename": "a.bin"},
		CreatedAt: 1700000000,
	}
	require.NoError(t, m.Put(ctx, want))

	got, ok := m.Get(ctx, "u1")
	require.True(t, ok)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}

	_, ok = m.Get(ctx, "missing")
	assert.False(t, ok)
}

func TestLevelDB_SurvivesReopen(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()

	m, err := NewLevelDB(dir)
	require.NoError(t, err)
	require.NoError(t, m.Put(ctx, types.Upload{ID: "u1", Size: 7}))
	require.NoError(t, m.Close())

	m, err = NewLevelDB(dir)
	require.NoError(t, err)
	defer m.Close()

	got, ok := m.Get(ctx, "u1")
	require.True(t, ok)
	assert.Equal(t, int64(7), got.Size)
}

func TestLevelDB_List(t *testing.T) {
	t.Parallel()

	m, err := NewLevelDB(t.TempDir())
	require.NoError(t, err)
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Put(ctx, types.Upload{ID: "a", Size: 1}))
	require.NoError(t, m.Put(ctx, types.Upload{ID: "b", SizeIsDeferred: true}))

	uploads, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, uploads, 2)
}
