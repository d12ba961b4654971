package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/fastygo/tasklist/api/handler"
	"github.com/fastygo/tasklist/internal/config"
	"github.com/fastygo/tasklist/internal/infrastructure/boltdb"
	"github.com/fastygo/tasklist/internal/infrastructure/monitor"
	"github.com/fastygo/tasklist/internal/infrastructure/storage"
	"github.com/fastygo/tasklist/internal/middleware"
	"github.com/fastygo/tasklist/internal/router"
	"github.com/fastygo/tasklist/internal/services"
	"github.com/fastygo/tasklist/internal/services/lifecycle"
	"github.com/fastygo/tasklist/pkg/httpcontext"
	"github.com/fastygo/tasklist/pkg/logger"
	"github.com/fastygo/tasklist/repository"
	"github.com/fastygo/tasklist/usecase"
	taskUC "github.com/fastygo/tasklist/usecase/task"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:      cfg.Logger.Level,
		Encoding:   cfg.Logger.Encoding,
		File:       cfg.Logger.File,
		MaxSizeMB:  cfg.Logger.MaxSizeMB,
		MaxBackups: cfg.Logger.MaxBackups,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	appCtx, cancel := manager.Listen(context.Background())
	defer cancel()

	backend, err := storage.Open(appCtx, cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("store unavailable", zap.String("backend", cfg.Store.Backend), zap.Error(err))
	}
	manager.RegisterCloser(backend.Name, backend.Close)

	taskRepo := repository.NewTaskListRepository(backend.Slot, cfg.Store.SlotKey)
	taskUseCase := taskUC.New(taskRepo, zapLogger, taskUC.Options{SkipSeed: !cfg.Store.Seed})
	if err := taskUseCase.Load(appCtx); err != nil {
		zapLogger.Fatal("failed to load task list", zap.Error(err))
	}

	mon := monitor.New(backend.Name, 10*time.Second, zapLogger)
	mon.AddCheck("store", backend.Slot.Ping)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)
	handlers := router.Handlers{
		Task:   apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		Health: apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	if cfg.Snapshot.Enabled {
		snapshotStore, err := boltdb.OpenSnapshotStore(cfg.Snapshot.Path)
		if err != nil {
			zapLogger.Fatal("failed to open snapshot store", zap.Error(err))
		}
		manager.RegisterCloser("snapshots", snapshotStore.Close)

		snapshotter := services.NewSnapshotter(
			taskRepo,
			snapshotStore,
			usecase.SystemClock{},
			zapLogger,
			services.SnapshotConfig{
				Interval:  cfg.Snapshot.Interval,
				Retention: time.Duration(cfg.Snapshot.RetentionHours) * time.Hour,
			},
		)
		snapshotter.Start()
		manager.Register("snapshotter", func(ctx context.Context) error {
			snapshotter.Stop(ctx)
			return nil
		})

		mon.AddCheck("snapshots", func(context.Context) error { return snapshotStore.Ping() })
		mon.CountSnapshots(snapshotStore.Size)
		handlers.Snapshot = apiHandler.NewSnapshotHandler(snapshotter, taskUseCase, ctxAdapter, zapLogger)
	}

	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	chain := []middleware.Middleware{middleware.RequestLogger(zapLogger)}
	if cfg.HTTP.EnableMetrics {
		metrics := middleware.NewMetrics()
		metrics.WatchStats(taskUseCase.Stats)
		handlers.Metrics = metrics.Handler()
		chain = append(chain, metrics.Middleware)
	}

	r := router.New(handlers)

	server := &fasthttp.Server{
		Handler:      middleware.Chain(r.Handler, chain...),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()), zap.String("backend", backend.Name))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
