// Copyright 2026 tusfs Authors
// SPDX-License-Identifier: Apache-2.0

package metastore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerdus/tusfs/pkg/types"
)

func TestFile_PutGet_RoundTrip(t *testing.T) {
	t.Parallel()

	m, err := NewFile(t.TempDir())
	require.NoError(t, err)
	defer m.Close()

	ctx := context.Background()
	want := types.Upload{
		ID:        "u1",
		Size:      1024,
		MetaData:  map[string]string{"filename": "video.mp4", "owner": "alice"},
		CreatedAt: 1700000000,
	}
	require.NoError(t, m.Put(ctx, want))

	got, ok := m.Get(ctx, "u1")
	require.True(t, ok)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestFile_Get_Absent(t *testing.T) {
	t.Parallel()

	m, err := NewFile(t.TempDir())
	require.NoError(t, err)
	defer m.Close()

	_, ok := m.Get(context.Background(), "nope")
	assert.False(t, ok)
}

func TestFile_Get_Unreadable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m, err := NewFile(dir)
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad"+InfoSuffix), []byte("{not json"), 0644))

	_, ok := m.Get(context.Background(), "bad")
	assert.False(t, ok)
}

func TestFile_Put_LeavesNoTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m, err := NewFile(dir)
	require.NoError(t, err)
	defer m.Close()

	require.NoError(t, m.Put(context.Background(), types.Upload{ID: "u1", Size: 1}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "u1"+InfoSuffix, entries[0].Name())
}

func TestFile_Put_Overwrite(t *testing.T) {
	t.Parallel()

	m, err := NewFile(t.TempDir())
	require.NoError(t, err)
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Put(ctx, types.Upload{ID: "u1", Size: 1}))
	require.NoError(t, m.Put(ctx, types.Upload{ID: "u1", Size: 2}))

	got, ok := m.Get(ctx, "u1")
	require.True(t, ok)
	assert.Equal(t, int64(2), got.Size)
}

func TestFile_List(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	m, err := NewFile(dir)
	require.NoError(t, err)
	defer m.Close()

	ctx := context.Background()
	require.NoError(t, m.Put(ctx, types.Upload{ID: "a", Size: 1}))
	require.NoError(t, m.Put(ctx, types.Upload{ID: "b", SizeIsDeferred: true}))

	// Data artifacts must not show up as records.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), []byte("data"), 0644))

	uploads, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, uploads, 2)

	ids := []string{uploads[0].ID, uploads[1].ID}
	assert.ElementsMatch(t, []string{"a", "b"}, ids)
}
