package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/tasklist/api/transport"
	"github.com/fastygo/tasklist/internal/infrastructure/boltdb"
	"github.com/fastygo/tasklist/internal/services"
	"github.com/fastygo/tasklist/pkg/httpcontext"
	taskUC "github.com/fastygo/tasklist/usecase/task"
)

type SnapshotHandler struct {
	baseHandler
	snapshots *services.Snapshotter
	tasks     *taskUC.UseCase
}

func NewSnapshotHandler(snapshots *services.Snapshotter, tasks *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *SnapshotHandler {
	return &SnapshotHandler{
		baseHandler: newBaseHandler(adapter, logger),
		snapshots:   snapshots,
		tasks:       tasks,
	}
}

// @Summary Capture a snapshot of the task list now
// @Tags snapshots
// @Router /api/v1/snapshots [post]
func (h *SnapshotHandler) Capture(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.tasks.Persist(stdCtx); err != nil {
		h.respondError(ctx, err)
		return
	}
	snap, err := h.snapshots.Capture(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, snapshotSummary(snap), nil)
}

// @Summary Restore the newest snapshot and reload the store
// @Tags snapshots
// @Router /api/v1/snapshots/restore [post]
func (h *SnapshotHandler) Restore(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	snap, err := h.snapshots.Restore(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if err := h.tasks.Load(stdCtx); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, snapshotSummary(snap), nil)
}

func snapshotSummary(snap boltdb.Snapshot) transport.SnapshotSummary {
	return transport.SnapshotSummary{
		ID:         snap.ID,
		TaskCount:  snap.TaskCount,
		CapturedAt: snap.Timestamp,
	}
}
