package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/tasklist/domain"
	"github.com/fastygo/tasklist/internal/infrastructure/boltdb"
	"github.com/fastygo/tasklist/repository"
	"github.com/fastygo/tasklist/repository/memory"
	"github.com/fastygo/tasklist/usecase"
)

func newSnapshotter(t *testing.T) (*Snapshotter, *repository.TaskListRepository) {
	t.Helper()
	store, err := boltdb.OpenSnapshotStore(filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	repo := repository.NewTaskListRepository(memory.NewSlot(), "tasks")
	now := time.Date(2025, 7, 14, 12, 0, 0, 0, time.UTC)
	s := NewSnapshotter(repo, store, usecase.FixedClock(now), nil, SnapshotConfig{Interval: time.Minute, Retention: time.Hour})
	return s, repo
}

func TestSnapshotter_CaptureSkipsEmptySlot(t *testing.T) {
	s, _ := newSnapshotter(t)

	snap, err := s.Capture(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.ID)

	_, err = s.Restore(context.Background())
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestSnapshotter_CaptureAndRestore(t *testing.T) {
	ctx := context.Background()
	s, repo := newSnapshotter(t)

	original := []domain.Task{{ID: 1, Title: "keep me", Priority: domain.PriorityLow}}
	require.NoError(t, repo.Save(ctx, original))

	snap, err := s.Capture(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, 1, snap.TaskCount)
	assert.Equal(t, "tasks", snap.SlotKey)

	require.NoError(t, repo.Save(ctx, nil))

	restored, err := s.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, snap.ID, restored.ID)

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, original, got)
}
