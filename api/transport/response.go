package transport

import (
	"encoding/json"
	"time"

	"github.com/fastygo/tasklist/domain"
)

// Envelope is the standard API response wrapper used for both success and error payloads.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  interface{} `json:"error,omitempty"`
	Meta   interface{} `json:"meta,omitempty"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
		Meta:   meta,
	}
}

// NewError returns an error envelope with optional metadata.
func NewError(code string, err interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "error",
		Code:   code,
		Error:  err,
		Meta:   meta,
	}
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}

// ListMeta accompanies a filtered task list.
type ListMeta struct {
	Filter string       `json:"filter"`
	Search string       `json:"search,omitempty"`
	Count  int          `json:"count"`
	Stats  domain.Stats `json:"stats"`
}

// MutationResult reports whether a no-op-tolerant mutation changed anything.
type MutationResult struct {
	Changed bool         `json:"changed"`
	Task    *domain.Task `json:"task,omitempty"`
}

// TaskView is a task plus its derived overdue flag.
type TaskView struct {
	domain.Task
	Overdue bool `json:"overdue"`
}

// SnapshotSummary describes a captured snapshot without its payload.
type SnapshotSummary struct {
	ID         string    `json:"id"`
	TaskCount  int       `json:"taskCount"`
	CapturedAt time.Time `json:"capturedAt"`
}
