package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/fastygo/tasklist/domain"
)

// DefaultSlotKey names the slot that holds the task list.
const DefaultSlotKey = "tasks"

// TaskListRepository stores the whole ordered task list as one JSON array.
type TaskListRepository struct {
	slot Slot
	key  string
}

func NewTaskListRepository(slot Slot, key string) *TaskListRepository {
	if key == "" {
		key = DefaultSlotKey
	}
	return &TaskListRepository{slot: slot, key: key}
}

// Key returns the slot key the list is stored under.
func (r *TaskListRepository) Key() string {
	return r.key
}

// Load reads and decodes the list. It returns domain.ErrSlotEmpty when the
// slot has never been written and domain.ErrSlotCorrupt when the payload is
// not a task array.
func (r *TaskListRepository) Load(ctx context.Context) ([]domain.Task, error) {
	raw, err := r.slot.Read(ctx, r.key)
	if err != nil {
		return nil, err
	}
	return DecodeTasks(raw)
}

// Save encodes the list and overwrites the slot.
func (r *TaskListRepository) Save(ctx context.Context, tasks []domain.Task) error {
	raw, err := EncodeTasks(tasks)
	if err != nil {
		return err
	}
	return r.slot.Write(ctx, r.key, raw)
}

// Raw returns the undecoded payload, used by snapshots.
func (r *TaskListRepository) Raw(ctx context.Context) ([]byte, error) {
	return r.slot.Read(ctx, r.key)
}

// RestoreRaw writes a previously captured payload back after checking it decodes.
func (r *TaskListRepository) RestoreRaw(ctx context.Context, raw []byte) error {
	if _, err := DecodeTasks(raw); err != nil {
		return err
	}
	return r.slot.Write(ctx, r.key, raw)
}

// EncodeTasks serialises tasks as a JSON array. A nil list encodes as [].
func EncodeTasks(tasks []domain.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return json.Marshal(tasks)
}

// DecodeTasks parses a JSON task array.
func DecodeTasks(raw []byte) ([]domain.Task, error) {
	if len(raw) == 0 {
		return nil, domain.ErrSlotEmpty
	}
	var tasks []domain.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return nil, domain.WrapError(domain.ErrCodeCorrupt, domain.ErrSlotCorrupt.Message, err)
	}
	return tasks, nil
}

// IsRecoverable reports whether a Load error means "start from an empty list".
func IsRecoverable(err error) bool {
	return errors.Is(err, domain.ErrSlotEmpty) || domain.IsDomainError(err, domain.ErrCodeCorrupt)
}

// TaskListStore loads and saves the whole ordered task list.
type TaskListStore interface {
	Load(ctx context.Context) ([]domain.Task, error)
	Save(ctx context.Context, tasks []domain.Task) error
}

var _ TaskListStore = (*TaskListRepository)(nil)
