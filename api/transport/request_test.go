package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fastygo/tasklist/domain"
)

func TestTaskRequest_Validate(t *testing.T) {
	assert.NoError(t, TaskRequest{Title: "Buy milk"}.Validate())
	assert.NoError(t, TaskRequest{Title: "Buy milk", Priority: "high"}.Validate())

	err := TaskRequest{}.Validate()
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))

	err = TaskRequest{Title: "Buy milk", Priority: "urgent"}.Validate()
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalid))
}

func TestReorderRequest_Validate(t *testing.T) {
	assert.NoError(t, ReorderRequest{DraggedID: 2, TargetID: 1}.Validate())
	assert.Error(t, ReorderRequest{DraggedID: 2}.Validate())
}
