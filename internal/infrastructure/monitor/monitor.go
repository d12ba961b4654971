package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// CheckFunc probes one dependency.
type CheckFunc func(ctx context.Context) error

// Counter reports a size, used for the snapshot count.
type Counter func() (int, error)

type check struct {
	name string
	fn   CheckFunc
}

// Monitor periodically runs health checks and caches the outcome.
type Monitor struct {
	backend   string
	checks    []check
	snapshots Counter

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	logger   *zap.Logger
}

func New(backend string, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		backend:  backend,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

// AddCheck registers a named check. Call before Start.
func (m *Monitor) AddCheck(name string, fn CheckFunc) {
	if fn == nil {
		return
	}
	m.checks = append(m.checks, check{name: name, fn: fn})
}

// CountSnapshots registers the snapshot counter. Call before Start.
func (m *Monitor) CountSnapshots(fn Counter) {
	m.snapshots = fn
}

func (m *Monitor) Start() {
	m.Refresh()
	go m.loop()
}

func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

func (m *Monitor) IsOnline() bool {
	return m.GetStatus().Healthy()
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Refresh()
		case <-m.stopCh:
			return
		}
	}
}

// Refresh runs every check once and stores the result.
func (m *Monitor) Refresh() {
	status := Status{
		Backend:   m.backend,
		Checks:    make(map[string]bool, len(m.checks)),
		LastCheck: time.Now(),
	}
	for _, c := range m.checks {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := c.fn(ctx)
		cancel()
		if err != nil {
			m.logger.Warn("health check failed", zap.String("check", c.name), zap.Error(err))
		}
		status.Checks[c.name] = err == nil
	}
	if m.snapshots != nil {
		size, err := m.snapshots()
		if err != nil {
			m.logger.Warn("snapshot count failed", zap.Error(err))
		}
		status.SnapshotCount = size
	}

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
}
