package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fastygo/tasklist/internal/config"
	"github.com/fastygo/tasklist/internal/infrastructure/boltdb"
	pgInfra "github.com/fastygo/tasklist/internal/infrastructure/postgres"
	redisInfra "github.com/fastygo/tasklist/internal/infrastructure/redis"
	"github.com/fastygo/tasklist/repository"
	boltRepo "github.com/fastygo/tasklist/repository/bolt"
	"github.com/fastygo/tasklist/repository/memory"
	pgRepo "github.com/fastygo/tasklist/repository/postgres"
	redisRepo "github.com/fastygo/tasklist/repository/redis"
)

// PingableSlot is a Slot whose backing store can be health-checked.
type PingableSlot interface {
	repository.Slot
	Ping(ctx context.Context) error
}

// Backend is the opened slot store selected by configuration.
type Backend struct {
	Name  string
	Slot  PingableSlot
	close func() error
}

// Close releases the underlying connection or file.
func (b *Backend) Close() error {
	if b == nil || b.close == nil {
		return nil
	}
	return b.close()
}

// Open connects the backend named by cfg.Store.Backend.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Backend, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Store.Backend {
	case config.BackendBolt:
		db, err := boltdb.Open(cfg.Bolt.Path, cfg.Bolt.Bucket)
		if err != nil {
			return nil, fmt.Errorf("open bolt store: %w", err)
		}
		logger.Info("bolt store opened", zap.String("path", cfg.Bolt.Path))
		return &Backend{
			Name:  config.BackendBolt,
			Slot:  boltRepo.NewSlot(db, cfg.Bolt.Bucket),
			close: db.Close,
		}, nil

	case config.BackendRedis:
		client, err := redisInfra.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		logger.Info("redis store connected", zap.String("url", client.Options().Addr))
		return &Backend{
			Name:  config.BackendRedis,
			Slot:  redisRepo.NewSlot(client, cfg.Redis.KeyPrefix),
			close: client.Close,
		}, nil

	case config.BackendPostgres:
		if err := pgInfra.RunMigrations(cfg.Database, cfg.Migrations, logger); err != nil {
			return nil, fmt.Errorf("migrations: %w", err)
		}
		pool, err := pgInfra.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return &Backend{
			Name: config.BackendPostgres,
			Slot: pgRepo.NewSlot(pool),
			close: func() error {
				pool.Close()
				return nil
			},
		}, nil

	case config.BackendMemory:
		logger.Warn("memory store selected, tasks will not survive a restart")
		return &Backend{Name: config.BackendMemory, Slot: memory.NewSlot()}, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}
