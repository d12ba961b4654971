package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/tasklist/domain"
)

func TestSlot_ReadWrite(t *testing.T) {
	ctx := context.Background()
	srv := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: srv.Addr()})
	t.Cleanup(func() { client.Close() })

	slot := NewSlot(client, "test:")
	require.NoError(t, slot.Ping(ctx))

	_, err := slot.Read(ctx, "tasks")
	assert.ErrorIs(t, err, domain.ErrSlotEmpty)

	require.NoError(t, slot.Write(ctx, "tasks", []byte(`[{"id":1}]`)))

	got, err := slot.Read(ctx, "tasks")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(got))

	raw, err := srv.Get("test:tasks")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, raw)
	assert.Zero(t, srv.TTL("test:tasks"))
}
