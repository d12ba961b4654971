package monitor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonitor_Refresh(t *testing.T) {
	m := New("bolt", 0, nil)
	m.AddCheck("store", func(context.Context) error { return nil })
	m.CountSnapshots(func() (int, error) { return 4, nil })

	m.Refresh()
	status := m.GetStatus()
	assert.Equal(t, "bolt", status.Backend)
	assert.True(t, status.Checks["store"])
	assert.Equal(t, 4, status.SnapshotCount)
	assert.True(t, m.IsOnline())

	m.AddCheck("snapshots", func(context.Context) error { return errors.New("closed") })
	m.Refresh()
	assert.False(t, m.GetStatus().Checks["snapshots"])
	assert.False(t, m.IsOnline())
}
