package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/tasklist/api/transport"
	"github.com/fastygo/tasklist/domain"
	"github.com/fastygo/tasklist/pkg/httpcontext"
	taskUC "github.com/fastygo/tasklist/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List tasks narrowed by filter and search term
// @Tags tasks
// @Router /api/v1/tasks [get]
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	filter := domain.ParseFilter(string(ctx.QueryArgs().Peek("filter")))
	search := string(ctx.QueryArgs().Peek("q"))

	tasks := h.uc.FilteredView(filter, search)
	now := h.uc.Now()
	views := make([]transport.TaskView, 0, len(tasks))
	for i := range tasks {
		views = append(views, transport.TaskView{Task: tasks[i], Overdue: tasks[i].IsOverdue(now)})
	}

	h.respondSuccess(ctx, http.StatusOK, views, transport.ListMeta{
		Filter: filter.String(),
		Search: search,
		Count:  len(views),
		Stats:  h.uc.Stats(),
	})
}

// @Summary Load a task's editable fields
// @Tags tasks
// @Router /api/v1/tasks/{id} [get]
func (h *TaskHandler) GetTask(ctx *fasthttp.RequestCtx) {
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	draft, found := h.uc.Edit(id)
	if !found {
		h.respondError(ctx, domain.ErrTaskNotFound)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, draft, notice(taskUC.NoticeEditing))
}

// @Summary Create task
// @Tags tasks
// @Router /api/v1/tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	req, ok := h.parseTask(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Add(stdCtx, req.Draft())
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created, notice(taskUC.NoticeAdded))
}

// @Summary Update task in place
// @Tags tasks
// @Router /api/v1/tasks/{id} [put]
func (h *TaskHandler) UpdateTask(ctx *fasthttp.RequestCtx) {
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}
	req, ok := h.parseTask(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, found, err := h.uc.Update(stdCtx, id, req.Draft())
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if !found {
		h.respondError(ctx, domain.ErrTaskNotFound)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated, notice(taskUC.NoticeUpdated))
}

// @Summary Delete task
// @Tags tasks
// @Router /api/v1/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	removed, err := h.uc.Remove(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	var meta interface{}
	if removed {
		meta = notice(taskUC.NoticeDeleted)
	}
	h.respondSuccess(ctx, http.StatusOK, transport.MutationResult{Changed: removed}, meta)
}

// @Summary Toggle completion
// @Tags tasks
// @Router /api/v1/tasks/{id}/toggle [post]
func (h *TaskHandler) ToggleTask(ctx *fasthttp.RequestCtx) {
	id, ok := h.taskID(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	task, found, err := h.uc.ToggleComplete(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if !found {
		h.respondSuccess(ctx, http.StatusOK, transport.MutationResult{}, nil)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.MutationResult{Changed: true, Task: &task}, notice(taskUC.ToggleNotice(task.Completed)))
}

// @Summary Move a task before another one
// @Tags tasks
// @Router /api/v1/tasks/reorder [post]
func (h *TaskHandler) ReorderTasks(ctx *fasthttp.RequestCtx) {
	var req transport.ReorderRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}
	if err := req.Validate(); err != nil {
		h.respondError(ctx, err)
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	moved, err := h.uc.Reorder(stdCtx, req.DraggedID, req.TargetID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	var meta interface{}
	if moved {
		meta = notice(taskUC.NoticeReordered)
	}
	h.respondSuccess(ctx, http.StatusOK, transport.MutationResult{Changed: moved}, meta)
}

// @Summary Task counts
// @Tags tasks
// @Router /api/v1/stats [get]
func (h *TaskHandler) GetStats(ctx *fasthttp.RequestCtx) {
	h.respondSuccess(ctx, http.StatusOK, h.uc.Stats(), nil)
}

func (h *TaskHandler) parseTask(ctx *fasthttp.RequestCtx) (transport.TaskRequest, bool) {
	var req transport.TaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return req, false
	}
	if err := req.Validate(); err != nil {
		h.respondError(ctx, err)
		return req, false
	}
	return req, true
}

func (h *TaskHandler) taskID(ctx *fasthttp.RequestCtx) (int64, bool) {
	raw, _ := ctx.UserValue("id").(string)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.respondInvalid(ctx, "invalid task id")
		return 0, false
	}
	return id, true
}

func notice(n taskUC.Notice) map[string]interface{} {
	return map[string]interface{}{"notice": n}
}
