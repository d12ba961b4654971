package transport

import (
	"github.com/go-playground/validator/v10"

	"github.com/fastygo/tasklist/domain"
)

var validate = validator.New()

// TaskRequest is the body of create and update calls.
type TaskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high"`
	Category    string `json:"category"`
	DueDate     string `json:"dueDate"`
}

// Validate checks field presence and the priority enum.
func (r TaskRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return domain.WrapError(domain.ErrCodeInvalid, "invalid task", err)
	}
	return nil
}

// Draft converts the request into the store's editable fields.
func (r TaskRequest) Draft() domain.Draft {
	return domain.Draft{
		Title:       r.Title,
		Description: r.Description,
		Priority:    domain.Priority(r.Priority),
		Category:    r.Category,
		DueDate:     r.DueDate,
	}
}

// ReorderRequest carries the ids produced by a drag-and-drop gesture.
type ReorderRequest struct {
	DraggedID int64 `json:"draggedId" validate:"required"`
	TargetID  int64 `json:"targetId" validate:"required"`
}

func (r ReorderRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return domain.WrapError(domain.ErrCodeInvalid, "invalid reorder request", err)
	}
	return nil
}
