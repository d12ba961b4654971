package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/tasklist/api/handler"
)

type Handlers struct {
	Task     *apiHandler.TaskHandler
	Snapshot *apiHandler.SnapshotHandler
	Health   *apiHandler.HealthHandler
	// Metrics is mounted at /metrics when set.
	Metrics fasthttp.RequestHandler
}

func New(handlers Handlers) *router.Router {
	r := router.New()
	r.SaveMatchedRoutePath = true

	if handlers.Health != nil {
		r.GET("/health", handlers.Health.Check)
	}
	if handlers.Metrics != nil {
		r.GET("/metrics", handlers.Metrics)
	}

	r.GET("/api/v1/tasks", handlers.Task.GetTasks)
	r.POST("/api/v1/tasks", handlers.Task.CreateTask)
	r.POST("/api/v1/tasks/reorder", handlers.Task.ReorderTasks)
	r.GET("/api/v1/tasks/{id}", handlers.Task.GetTask)
	r.PUT("/api/v1/tasks/{id}", handlers.Task.UpdateTask)
	r.DELETE("/api/v1/tasks/{id}", handlers.Task.DeleteTask)
	r.POST("/api/v1/tasks/{id}/toggle", handlers.Task.ToggleTask)
	r.GET("/api/v1/stats", handlers.Task.GetStats)

	if handlers.Snapshot != nil {
		r.POST("/api/v1/snapshots", handlers.Snapshot.Capture)
		r.POST("/api/v1/snapshots/restore", handlers.Snapshot.Restore)
	}

	return r
}
