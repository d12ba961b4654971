package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fastygo/tasklist/domain"
	"github.com/fastygo/tasklist/internal/infrastructure/boltdb"
	"github.com/fastygo/tasklist/repository"
	"github.com/fastygo/tasklist/usecase"
)

// RawTaskList reads and restores the undecoded task list payload.
type RawTaskList interface {
	Key() string
	Raw(ctx context.Context) ([]byte, error)
	RestoreRaw(ctx context.Context, raw []byte) error
}

// SnapshotStore persists captured payloads.
type SnapshotStore interface {
	Put(snap boltdb.Snapshot) (boltdb.Snapshot, error)
	Latest() (boltdb.Snapshot, bool, error)
	Cleanup(olderThan time.Time) (int, error)
}

// SnapshotConfig controls capture frequency and retention.
type SnapshotConfig struct {
	Interval  time.Duration
	Retention time.Duration
}

// ErrNoSnapshot is returned by Restore when nothing has been captured yet.
var ErrNoSnapshot = domain.NewError(domain.ErrCodeNotFound, "no snapshot available")

// Snapshotter copies the task list slot into the snapshot store on a schedule.
type Snapshotter struct {
	list   RawTaskList
	store  SnapshotStore
	clock  usecase.Clock
	logger *zap.Logger
	cron   *cron.Cron
	cfg    SnapshotConfig
}

func NewSnapshotter(list RawTaskList, store SnapshotStore, clock usecase.Clock, logger *zap.Logger, cfg SnapshotConfig) *Snapshotter {
	if cfg.Interval <= 0 {
		cfg.Interval = 15 * time.Minute
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 72 * time.Hour
	}
	if clock == nil {
		clock = usecase.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Snapshotter{
		list:   list,
		store:  store,
		clock:  clock,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if _, err := s.Capture(ctx); err != nil {
			s.logger.Error("snapshot capture failed", zap.Error(err))
		}
	})

	return s
}

// Start launches the cron scheduler.
func (s *Snapshotter) Start() {
	if s == nil || s.cron == nil {
		return
	}
	s.cron.Start()
	s.logger.Info("snapshotter started", zap.Duration("interval", s.cfg.Interval))
}

// Stop waits for a running capture to finish or ctx to expire.
func (s *Snapshotter) Stop(ctx context.Context) {
	if s == nil || s.cron == nil {
		return
	}
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	s.logger.Info("snapshotter stopped")
}

// Capture copies the current slot payload and prunes expired snapshots.
// An empty slot is skipped and the returned snapshot has no ID.
func (s *Snapshotter) Capture(ctx context.Context) (snap boltdb.Snapshot, err error) {
	raw, err := s.list.Raw(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSlotEmpty) {
			s.logger.Debug("skipping snapshot (empty slot)")
			return snap, nil
		}
		return snap, err
	}

	count := 0
	if tasks, err := repository.DecodeTasks(raw); err == nil {
		count = len(tasks)
	} else {
		s.logger.Warn("snapshotting unreadable task list", zap.Error(err))
	}

	now := s.clock.Now()
	snap, err = s.store.Put(boltdb.Snapshot{
		SlotKey:   s.list.Key(),
		Data:      raw,
		TaskCount: count,
		Timestamp: now,
	})
	if err != nil {
		return snap, err
	}

	removed, err := s.store.Cleanup(now.Add(-s.cfg.Retention))
	if err != nil {
		s.logger.Warn("snapshot cleanup failed", zap.Error(err))
	} else if removed > 0 {
		s.logger.Debug("pruned snapshots", zap.Int("removed", removed))
	}

	s.logger.Info("snapshot captured", zap.String("snapshot_id", snap.ID), zap.Int("tasks", count))
	return snap, nil
}

// Restore writes the newest snapshot back into the slot.
func (s *Snapshotter) Restore(ctx context.Context) (boltdb.Snapshot, error) {
	snap, ok, err := s.store.Latest()
	if err != nil {
		return snap, err
	}
	if !ok {
		return snap, ErrNoSnapshot
	}
	if err := s.list.RestoreRaw(ctx, snap.Data); err != nil {
		return snap, fmt.Errorf("restore snapshot %s: %w", snap.ID, err)
	}
	s.logger.Info("snapshot restored", zap.String("snapshot_id", snap.ID), zap.Time("captured_at", snap.Timestamp))
	return snap, nil
}
