package task

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/tasklist/domain"
	"github.com/fastygo/tasklist/repository"
	"github.com/fastygo/tasklist/usecase"
)

// Options tunes a UseCase. Zero values pick the defaults.
type Options struct {
	Clock usecase.Clock
	IDs   IDAllocator
	// SkipSeed disables installing the sample tasks into an empty list.
	SkipSeed bool
}

// UseCase owns the ordered task list for a session. Every mutation is
// written through to the repository before it returns.
type UseCase struct {
	repo   repository.TaskListStore
	clock  usecase.Clock
	ids    IDAllocator
	seed   bool
	logger *zap.Logger

	mu    sync.RWMutex
	tasks []domain.Task
}

func New(repo repository.TaskListStore, logger *zap.Logger, opts Options) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Clock == nil {
		opts.Clock = usecase.SystemClock{}
	}
	if opts.IDs == nil {
		opts.IDs = NewMonotonicIDs(opts.Clock)
	}
	return &UseCase{
		repo:   repo,
		clock:  opts.Clock,
		ids:    opts.IDs,
		seed:   !opts.SkipSeed,
		logger: logger,
	}
}

// Load replaces the in-memory list with the persisted one. A missing or
// unreadable slot yields an empty list; an empty list gets the sample
// tasks, which are persisted straight away.
func (uc *UseCase) Load(ctx context.Context) error {
	tasks, err := uc.repo.Load(ctx)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrSlotEmpty):
		uc.logger.Info("no persisted task list, starting empty")
		tasks = nil
	case repository.IsRecoverable(err):
		uc.logger.Warn("discarding unreadable task list", zap.Error(err))
		tasks = nil
	default:
		return domain.WrapError(domain.ErrCodeInternal, "load task list", err)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.tasks = tasks
	for i := range uc.tasks {
		uc.ids.Observe(uc.tasks[i].ID)
	}

	if len(uc.tasks) > 0 || !uc.seed {
		uc.logger.Debug("task list loaded", zap.Int("count", len(uc.tasks)))
		return nil
	}

	uc.tasks = SeedTasks(uc.now())
	for i := range uc.tasks {
		uc.ids.Observe(uc.tasks[i].ID)
	}
	uc.logger.Info("installed sample tasks", zap.Int("count", len(uc.tasks)))
	return uc.persistLocked(ctx)
}

// Add creates a task from draft and puts it at the front of the list.
func (uc *UseCase) Add(ctx context.Context, draft domain.Draft) (domain.Task, error) {
	draft, err := draft.Normalize()
	if err != nil {
		return domain.Task{}, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	task := domain.Task{
		ID:          uc.ids.Next(),
		Title:       draft.Title,
		Description: draft.Description,
		Priority:    draft.Priority,
		Category:    draft.Category,
		DueDate:     draft.DueDate,
		CreatedAt:   uc.now(),
	}
	uc.tasks = slices.Insert(uc.tasks, 0, task)

	uc.logger.Debug("task added", zap.Int64("id", task.ID))
	return task, uc.persistLocked(ctx)
}

// Remove deletes the task with id. removed is false when no task matched,
// in which case nothing is written.
func (uc *UseCase) Remove(ctx context.Context, id int64) (removed bool, err error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	idx := uc.indexLocked(id)
	if idx < 0 {
		return false, nil
	}
	uc.tasks = slices.Delete(uc.tasks, idx, idx+1)

	uc.logger.Debug("task removed", zap.Int64("id", id))
	return true, uc.persistLocked(ctx)
}

// ToggleComplete flips the completed flag. The returned task carries the
// new state; found is false when no task matched.
func (uc *UseCase) ToggleComplete(ctx context.Context, id int64) (task domain.Task, found bool, err error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	idx := uc.indexLocked(id)
	if idx < 0 {
		return domain.Task{}, false, nil
	}
	uc.tasks[idx].Completed = !uc.tasks[idx].Completed
	task = uc.tasks[idx]

	uc.logger.Debug("task toggled", zap.Int64("id", id), zap.Bool("completed", task.Completed))
	return task, true, uc.persistLocked(ctx)
}

// Edit returns the editable fields of a task so a caller can prefill a
// form. The task stays in the list; submit the changes with Update.
func (uc *UseCase) Edit(id int64) (domain.Draft, bool) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	idx := uc.indexLocked(id)
	if idx < 0 {
		return domain.Draft{}, false
	}
	return uc.tasks[idx].Draft(), true
}

// Update overwrites the editable fields of a task in place. ID, CreatedAt,
// Completed and the list position are kept.
func (uc *UseCase) Update(ctx context.Context, id int64, draft domain.Draft) (task domain.Task, found bool, err error) {
	draft, err = draft.Normalize()
	if err != nil {
		return domain.Task{}, false, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	idx := uc.indexLocked(id)
	if idx < 0 {
		return domain.Task{}, false, nil
	}
	t := &uc.tasks[idx]
	t.Title = draft.Title
	t.Description = draft.Description
	t.Priority = draft.Priority
	t.Category = draft.Category
	t.DueDate = draft.DueDate

	uc.logger.Debug("task updated", zap.Int64("id", id))
	return *t, true, uc.persistLocked(ctx)
}

// Reorder moves the dragged task to the index the target occupied before
// the move. Dragging downwards therefore lands the task after the target.
// moved is false when either id is unknown or both are the same task.
func (uc *UseCase) Reorder(ctx context.Context, draggedID, targetID int64) (moved bool, err error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	from := uc.indexLocked(draggedID)
	to := uc.indexLocked(targetID)
	if from < 0 || to < 0 || from == to {
		return false, nil
	}

	task := uc.tasks[from]
	uc.tasks = slices.Delete(uc.tasks, from, from+1)
	uc.tasks = slices.Insert(uc.tasks, to, task)

	uc.logger.Debug("task reordered", zap.Int64("id", draggedID), zap.Int("from", from), zap.Int("to", to))
	return true, uc.persistLocked(ctx)
}

// FilteredView narrows the list by search term, then by filter. The list
// order is preserved and overdue is judged at the current clock instant.
func (uc *UseCase) FilteredView(filter domain.Filter, search string) []domain.Task {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return domain.Apply(uc.tasks, filter, search, uc.clock.Now())
}

// Stats counts the whole, unfiltered list.
func (uc *UseCase) Stats() domain.Stats {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return domain.ComputeStats(uc.tasks, uc.clock.Now())
}

// List returns a copy of the ordered list.
func (uc *UseCase) List() []domain.Task {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return slices.Clone(uc.tasks)
}

// Get returns the task with id.
func (uc *UseCase) Get(id int64) (domain.Task, bool) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	idx := uc.indexLocked(id)
	if idx < 0 {
		return domain.Task{}, false
	}
	return uc.tasks[idx], true
}

// Now returns the instant the store evaluates overdue against.
func (uc *UseCase) Now() time.Time {
	return uc.clock.Now()
}

// Persist writes the current list to the repository.
func (uc *UseCase) Persist(ctx context.Context) error {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.persistLocked(ctx)
}

func (uc *UseCase) persistLocked(ctx context.Context) error {
	if err := uc.repo.Save(ctx, uc.tasks); err != nil {
		uc.logger.Error("failed to persist task list", zap.Error(err))
		return domain.WrapError(domain.ErrCodeInternal, "persist task list", err)
	}
	return nil
}

func (uc *UseCase) indexLocked(id int64) int {
	return slices.IndexFunc(uc.tasks, func(t domain.Task) bool { return t.ID == id })
}

func (uc *UseCase) now() time.Time {
	return uc.clock.Now().UTC().Truncate(time.Millisecond)
}
