package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/tasklist/domain"
	"github.com/fastygo/tasklist/internal/config"
)

func TestOpenMemory(t *testing.T) {
	backend, err := Open(context.Background(), &config.Config{Store: config.StoreConfig{Backend: config.BackendMemory}}, nil)
	require.NoError(t, err)
	defer backend.Close()

	assert.Equal(t, config.BackendMemory, backend.Name)
	require.NoError(t, backend.Slot.Ping(context.Background()))

	_, err = backend.Slot.Read(context.Background(), "tasks")
	assert.ErrorIs(t, err, domain.ErrSlotEmpty)
}

func TestOpenBoltPersistsAcrossReopen(t *testing.T) {
	cfg := &config.Config{
		Store: config.StoreConfig{Backend: config.BackendBolt},
		Bolt:  config.BoltConfig{Path: filepath.Join(t.TempDir(), "nested", "tasks.db"), Bucket: "slots"},
	}
	ctx := context.Background()

	backend, err := Open(ctx, cfg, nil)
	require.NoError(t, err)
	require.NoError(t, backend.Slot.Write(ctx, "tasks", []byte(`[]`)))
	require.NoError(t, backend.Close())

	backend, err = Open(ctx, cfg, nil)
	require.NoError(t, err)
	defer backend.Close()

	raw, err := backend.Slot.Read(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(raw))
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{Store: config.StoreConfig{Backend: "etcd"}}, nil)
	assert.Error(t, err)
}
