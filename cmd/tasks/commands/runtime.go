package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/tasklist/internal/config"
	"github.com/fastygo/tasklist/internal/infrastructure/boltdb"
	"github.com/fastygo/tasklist/internal/infrastructure/storage"
	"github.com/fastygo/tasklist/internal/services"
	"github.com/fastygo/tasklist/pkg/logger"
	"github.com/fastygo/tasklist/repository"
	"github.com/fastygo/tasklist/usecase"
	taskUC "github.com/fastygo/tasklist/usecase/task"
)

// Runtime holds what a single CLI invocation works against.
type Runtime struct {
	Config *config.Config
	Logger *zap.Logger
	Repo   *repository.TaskListRepository
	Tasks  *taskUC.UseCase
	Clock  usecase.Clock

	closers []func() error
}

// OpenFunc builds the Runtime for a command.
type OpenFunc func(ctx context.Context) (*Runtime, error)

// OpenFromEnv loads configuration from the environment, connects the
// configured store and loads the task list. Logs go to stderr so command
// output stays clean.
func OpenFromEnv(ctx context.Context) (*Runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: "console",
		Output:   os.Stderr,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	backend, err := storage.Open(ctx, cfg, zapLogger)
	if err != nil {
		return nil, err
	}

	rt := NewRuntime(cfg, zapLogger, repository.NewTaskListRepository(backend.Slot, cfg.Store.SlotKey), nil)
	rt.closers = append(rt.closers, backend.Close)
	if err := rt.Tasks.Load(ctx); err != nil {
		_ = rt.Close()
		return nil, err
	}
	return rt, nil
}

// NewRuntime wires a Runtime around an already opened repository. The
// task list is not loaded.
func NewRuntime(cfg *config.Config, zapLogger *zap.Logger, repo *repository.TaskListRepository, clock usecase.Clock) *Runtime {
	if zapLogger == nil {
		zapLogger = zap.NewNop()
	}
	if clock == nil {
		clock = usecase.SystemClock{}
	}
	return &Runtime{
		Config: cfg,
		Logger: zapLogger,
		Repo:   repo,
		Clock:  clock,
		Tasks:  taskUC.New(repo, zapLogger, taskUC.Options{Clock: clock, SkipSeed: !cfg.Store.Seed}),
	}
}

// Snapshotter opens the snapshot file and returns a service bound to it.
// The file is closed together with the Runtime.
func (r *Runtime) Snapshotter() (*services.Snapshotter, error) {
	store, err := boltdb.OpenSnapshotStore(r.Config.Snapshot.Path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}
	r.closers = append(r.closers, store.Close)
	return services.NewSnapshotter(r.Repo, store, r.Clock, r.Logger, services.SnapshotConfig{
		Interval:  r.Config.Snapshot.Interval,
		Retention: time.Duration(r.Config.Snapshot.RetentionHours) * time.Hour,
	}), nil
}

// Close releases everything opened for the invocation, newest first.
func (r *Runtime) Close() error {
	if r == nil {
		return nil
	}
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	_ = r.Logger.Sync()
	return errors.Join(errs...)
}
