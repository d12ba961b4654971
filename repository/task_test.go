package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/tasklist/domain"
	"github.com/fastygo/tasklist/repository"
	"github.com/fastygo/tasklist/repository/memory"
)

func TestTaskListRepository_EmptySlot(t *testing.T) {
	repo := repository.NewTaskListRepository(memory.NewSlot(), "")
	assert.Equal(t, repository.DefaultSlotKey, repo.Key())

	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrSlotEmpty)
	assert.True(t, repository.IsRecoverable(err))
}

func TestTaskListRepository_CorruptSlot(t *testing.T) {
	ctx := context.Background()
	slot := memory.NewSlot()
	require.NoError(t, slot.Write(ctx, "tasks", []byte("[{\"id\":")))

	_, err := repository.NewTaskListRepository(slot, "tasks").Load(ctx)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeCorrupt))
	assert.True(t, repository.IsRecoverable(err))
}

func TestTaskListRepository_ReadsBrowserPayload(t *testing.T) {
	ctx := context.Background()
	slot := memory.NewSlot()
	payload := `[{"id":1752480000000,"title":"Buy milk","description":"","priority":"low","category":"shopping","dueDate":"","completed":false,"createdAt":"2025-07-14T08:00:00.000Z"}]`
	require.NoError(t, slot.Write(ctx, "tasks", []byte(payload)))

	tasks, err := repository.NewTaskListRepository(slot, "tasks").Load(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, int64(1752480000000), tasks[0].ID)
	assert.Equal(t, domain.PriorityLow, tasks[0].Priority)
	assert.Equal(t, time.Date(2025, 7, 14, 8, 0, 0, 0, time.UTC), tasks[0].CreatedAt)
}

func TestTaskListRepository_SaveLoad(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewTaskListRepository(memory.NewSlot(), "tasks")
	created := time.Date(2025, 7, 14, 8, 0, 0, 0, time.UTC)

	tasks := []domain.Task{
		{ID: 2, Title: "B", Priority: domain.PriorityHigh, Category: "work", DueDate: "2025-07-15T09:00", CreatedAt: created},
		{ID: 1, Title: "A", Description: "first", Priority: domain.PriorityLow, Completed: true, CreatedAt: created},
	}
	require.NoError(t, repo.Save(ctx, tasks))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, tasks, got)

	raw, err := repo.Raw(ctx)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"dueDate":"2025-07-15T09:00"`)
}

func TestTaskListRepository_SaveEmptyWritesArray(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewTaskListRepository(memory.NewSlot(), "tasks")
	require.NoError(t, repo.Save(ctx, nil))

	raw, err := repo.Raw(ctx)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestTaskListRepository_RestoreRawRejectsGarbage(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewTaskListRepository(memory.NewSlot(), "tasks")

	assert.Error(t, repo.RestoreRaw(ctx, []byte("nope")))
	assert.NoError(t, repo.RestoreRaw(ctx, []byte(`[{"id":1,"title":"A"}]`)))
}
