package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/tasklist/api/handler"
	"github.com/fastygo/tasklist/domain"
	"github.com/fastygo/tasklist/internal/router"
	"github.com/fastygo/tasklist/pkg/httpcontext"
	"github.com/fastygo/tasklist/repository"
	"github.com/fastygo/tasklist/repository/memory"
	"github.com/fastygo/tasklist/usecase"
	taskUC "github.com/fastygo/tasklist/usecase/task"
)

type envelope struct {
	Status string          `json:"status"`
	Code   string          `json:"code"`
	Data   json.RawMessage `json:"data"`
	Meta   json.RawMessage `json:"meta"`
}

type server struct {
	t       *testing.T
	handler fasthttp.RequestHandler
	uc      *taskUC.UseCase
}

func newServer(t *testing.T, seed []domain.Task) *server {
	t.Helper()
	ctx := context.Background()
	repo := repository.NewTaskListRepository(memory.NewSlot(), "")
	if seed != nil {
		require.NoError(t, repo.Save(ctx, seed))
	}
	now := time.Date(2025, 7, 14, 12, 0, 0, 0, time.UTC)
	uc := taskUC.New(repo, nil, taskUC.Options{Clock: usecase.FixedClock(now), SkipSeed: true})
	require.NoError(t, uc.Load(ctx))

	adapter := httpcontext.NewAdapter(time.Second)
	r := router.New(router.Handlers{Task: apiHandler.NewTaskHandler(uc, adapter, nil)})
	return &server{t: t, handler: r.Handler, uc: uc}
}

func (s *server) do(method, uri, body string) (int, envelope) {
	s.t.Helper()
	var req fasthttp.Request
	req.Header.SetMethod(method)
	req.SetRequestURI(uri)
	if body != "" {
		req.Header.SetContentType("application/json")
		req.SetBodyString(body)
	}

	var ctx fasthttp.RequestCtx
	ctx.Init(&req, nil, nil)
	s.handler(&ctx)

	var env envelope
	require.NoError(s.t, json.Unmarshal(ctx.Response.Body(), &env), string(ctx.Response.Body()))
	return ctx.Response.StatusCode(), env
}

func seedTasks() []domain.Task {
	return []domain.Task{
		{ID: 1, Title: "Write proposal", Priority: domain.PriorityHigh, Category: "work", DueDate: "2025-07-01T09:00:00Z"},
		{ID: 2, Title: "Buy milk", Priority: domain.PriorityLow, Category: "shopping", Completed: true},
		{ID: 3, Title: "Gym", Priority: domain.PriorityLow, Category: "health"},
	}
}

func TestGetTasks_FilterAndSearch(t *testing.T) {
	s := newServer(t, seedTasks())

	status, env := s.do(http.MethodGet, "/api/v1/tasks?filter=pending", "")
	require.Equal(t, http.StatusOK, status)
	var views []struct {
		ID      int64 `json:"id"`
		Overdue bool  `json:"overdue"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &views))
	require.Len(t, views, 2)
	assert.Equal(t, int64(1), views[0].ID)
	assert.True(t, views[0].Overdue)
	assert.Equal(t, int64(3), views[1].ID)

	var meta struct {
		Filter string       `json:"filter"`
		Count  int          `json:"count"`
		Stats  domain.Stats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(env.Meta, &meta))
	assert.Equal(t, "pending", meta.Filter)
	assert.Equal(t, 2, meta.Count)
	assert.Equal(t, domain.Stats{Total: 3, Completed: 1, Pending: 2, Overdue: 1}, meta.Stats)

	_, env = s.do(http.MethodGet, "/api/v1/tasks?filter=shopping&q=MILK", "")
	require.NoError(t, json.Unmarshal(env.Data, &views))
	require.Len(t, views, 1)
	assert.Equal(t, int64(2), views[0].ID)
}

func TestCreateTask(t *testing.T) {
	s := newServer(t, nil)

	status, env := s.do(http.MethodPost, "/api/v1/tasks", `{"title":"Buy milk","priority":"low","category":"shopping"}`)
	require.Equal(t, http.StatusCreated, status)

	var created domain.Task
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "Buy milk", created.Title)
	assert.False(t, created.Completed)
	assert.Contains(t, string(env.Meta), "Task added successfully!")

	list := s.uc.List()
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestCreateTask_Invalid(t *testing.T) {
	s := newServer(t, nil)

	status, env := s.do(http.MethodPost, "/api/v1/tasks", `{"title":""}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, string(domain.ErrCodeInvalid), env.Code)

	status, _ = s.do(http.MethodPost, "/api/v1/tasks", `{"title":"x","priority":"urgent"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(http.MethodPost, "/api/v1/tasks", `not json`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Empty(t, s.uc.List())
}

func TestEditAndUpdate(t *testing.T) {
	s := newServer(t, seedTasks())

	status, env := s.do(http.MethodGet, "/api/v1/tasks/3", "")
	require.Equal(t, http.StatusOK, status)
	var draft domain.Draft
	require.NoError(t, json.Unmarshal(env.Data, &draft))
	assert.Equal(t, "Gym", draft.Title)
	assert.Len(t, s.uc.List(), 3)

	status, _ = s.do(http.MethodPut, "/api/v1/tasks/3", `{"title":"Gym at 7","priority":"medium","category":"health"}`)
	require.Equal(t, http.StatusOK, status)
	task, ok := s.uc.Get(3)
	require.True(t, ok)
	assert.Equal(t, "Gym at 7", task.Title)

	status, env = s.do(http.MethodGet, "/api/v1/tasks/99", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, string(domain.ErrCodeNotFound), env.Code)

	status, _ = s.do(http.MethodGet, "/api/v1/tasks/abc", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestDeleteToggleReorder_MissingIDsAreNoOps(t *testing.T) {
	s := newServer(t, seedTasks())

	status, env := s.do(http.MethodDelete, "/api/v1/tasks/99", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"changed":false}`, string(env.Data))

	status, env = s.do(http.MethodPost, "/api/v1/tasks/99/toggle", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"changed":false}`, string(env.Data))

	status, env = s.do(http.MethodPost, "/api/v1/tasks/reorder", `{"draggedId":99,"targetId":1}`)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"changed":false}`, string(env.Data))

	assert.Len(t, s.uc.List(), 3)
}

func TestDeleteToggleReorder(t *testing.T) {
	s := newServer(t, seedTasks())

	status, env := s.do(http.MethodPost, "/api/v1/tasks/3/toggle", "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Meta), "Task completed!")

	status, env = s.do(http.MethodPost, "/api/v1/tasks/reorder", `{"draggedId":3,"targetId":1}`)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Meta), "Tasks reordered!")

	status, env = s.do(http.MethodDelete, "/api/v1/tasks/2", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"changed":true}`, string(env.Data))

	ids := make([]int64, 0)
	for _, task := range s.uc.List() {
		ids = append(ids, task.ID)
	}
	assert.Equal(t, []int64{3, 1}, ids)

	status, env = s.do(http.MethodGet, "/api/v1/stats", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"total":2,"completed":1,"pending":1,"overdue":1}`, string(env.Data))
}
