package bolt

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/tasklist/domain"
	"github.com/fastygo/tasklist/internal/infrastructure/boltdb"
)

func TestSlot_ReadWrite(t *testing.T) {
	ctx := context.Background()
	db, err := boltdb.Open(filepath.Join(t.TempDir(), "tasks.db"), DefaultBucket)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	slot := NewSlot(db, "")
	require.NoError(t, slot.Ping(ctx))

	_, err = slot.Read(ctx, "tasks")
	assert.ErrorIs(t, err, domain.ErrSlotEmpty)

	require.NoError(t, slot.Write(ctx, "tasks", []byte(`[1]`)))
	require.NoError(t, slot.Write(ctx, "tasks", []byte(`[2]`)))

	got, err := slot.Read(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, `[2]`, string(got))
}

func TestSlot_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tasks.db")

	db, err := boltdb.Open(path, DefaultBucket)
	require.NoError(t, err)
	require.NoError(t, NewSlot(db, DefaultBucket).Write(ctx, "tasks", []byte(`[]`)))
	require.NoError(t, db.Close())

	db, err = boltdb.Open(path, DefaultBucket)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	got, err := NewSlot(db, DefaultBucket).Read(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}
