package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority("")
	require.NoError(t, err)
	assert.Equal(t, PriorityMedium, p)

	p, err = ParsePriority("HIGH")
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, p)

	_, err = ParsePriority("urgent")
	assert.True(t, IsDomainError(err, ErrCodeInvalid))
}

func TestParseDueDate_AcceptsFormLayouts(t *testing.T) {
	for _, value := range []string{
		"2025-07-15T09:00",
		"2025-07-15T09:00:30",
		"2025-07-15",
		"2025-07-15T09:00:00Z",
		"2025-07-15T09:00:00.123+02:00",
	} {
		_, ok := ParseDueDate(value)
		assert.True(t, ok, value)
	}

	_, ok := ParseDueDate("next tuesday")
	assert.False(t, ok)
	_, ok = ParseDueDate("")
	assert.False(t, ok)
}

func TestTask_IsOverdue(t *testing.T) {
	now := time.Date(2025, 7, 14, 12, 0, 0, 0, time.UTC)

	past := Task{DueDate: "2025-07-13T07:00:00Z"}
	assert.True(t, past.IsOverdue(now))

	done := Task{DueDate: "2025-07-13T07:00:00Z", Completed: true}
	assert.False(t, done.IsOverdue(now))

	future := Task{DueDate: "2025-07-15T07:00:00Z"}
	assert.False(t, future.IsOverdue(now))

	exact := Task{DueDate: "2025-07-14T12:00:00Z"}
	assert.False(t, exact.IsOverdue(now), "due exactly now is not strictly in the past")

	none := Task{}
	assert.False(t, none.IsOverdue(now))

	garbage := Task{DueDate: "soon"}
	assert.False(t, garbage.IsOverdue(now))
}

func TestTask_Matches(t *testing.T) {
	task := Task{Title: "Buy groceries", Description: "Get MILK and bread"}
	assert.True(t, task.Matches(""))
	assert.True(t, task.Matches("GROC"))
	assert.True(t, task.Matches("milk"))
	assert.False(t, task.Matches("eggs"))
}

func TestDraft_Normalize(t *testing.T) {
	_, err := Draft{Title: "   "}.Normalize()
	assert.ErrorIs(t, err, ErrTitleRequired)

	d, err := Draft{Title: "Buy milk"}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, PriorityMedium, d.Priority)

	_, err = Draft{Title: "Buy milk", Priority: "someday"}.Normalize()
	assert.True(t, IsDomainError(err, ErrCodeInvalid))
}

func TestComputeStats(t *testing.T) {
	now := time.Date(2025, 7, 14, 12, 0, 0, 0, time.UTC)
	tasks := []Task{
		{ID: 1, Title: "A"},
		{ID: 2, Title: "B", Completed: true},
		{ID: 3, Title: "C", DueDate: "2025-07-01T00:00:00Z"},
		{ID: 4, Title: "D", DueDate: "2025-07-01T00:00:00Z", Completed: true},
	}

	stats := ComputeStats(tasks, now)
	assert.Equal(t, Stats{Total: 4, Completed: 2, Pending: 2, Overdue: 1}, stats)
	assert.Equal(t, stats.Total-stats.Completed, stats.Pending)

	assert.Equal(t, Stats{}, ComputeStats(nil, now))
}
