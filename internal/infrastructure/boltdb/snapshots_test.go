package boltdb

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SnapshotStore {
	t.Helper()
	store, err := OpenSnapshotStore(filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSnapshotStore_LatestAndList(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2025, 7, 14, 12, 0, 0, 0, time.UTC)

	_, ok, err := store.Latest()
	require.NoError(t, err)
	assert.False(t, ok)

	for i := 0; i < 3; i++ {
		_, err := store.Put(Snapshot{
			SlotKey:   "tasks",
			Data:      []byte(`[]`),
			TaskCount: i,
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	latest, ok, err := store.Latest()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, latest.TaskCount)
	assert.NotEmpty(t, latest.ID)

	list, err := store.List(2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 2, list[0].TaskCount)
	assert.Equal(t, 1, list[1].TaskCount)

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 3, size)
	assert.NoError(t, store.Ping())
}

func TestSnapshotStore_Cleanup(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2025, 7, 14, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		_, err := store.Put(Snapshot{SlotKey: "tasks", Data: []byte(`[]`), Timestamp: base.Add(time.Duration(i) * time.Hour)})
		require.NoError(t, err)
	}

	removed, err := store.Cleanup(base.Add(2 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	size, err := store.Size()
	require.NoError(t, err)
	assert.Equal(t, 2, size)
}
