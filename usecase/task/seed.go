package task

import (
	"time"

	"github.com/fastygo/tasklist/domain"
)

// SeedTasks returns the onboarding tasks installed into an empty store.
func SeedTasks(createdAt time.Time) []domain.Task {
	return []domain.Task{
		{
			ID:          1,
			Title:       "Complete project proposal",
			Description: "Write and submit the Q4 project proposal for client review",
			Priority:    domain.PriorityHigh,
			Category:    "work",
			DueDate:     "2025-07-15T09:00",
			CreatedAt:   createdAt,
		},
		{
			ID:          2,
			Title:       "Buy groceries",
			Description: "Get milk, bread, eggs, and vegetables from the store",
			Priority:    domain.PriorityMedium,
			Category:    "shopping",
			DueDate:     "2025-07-14T18:00",
			CreatedAt:   createdAt,
		},
		{
			ID:          3,
			Title:       "Morning workout",
			Description: "30-minute cardio session at the gym",
			Priority:    domain.PriorityLow,
			Category:    "health",
			DueDate:     "2025-07-13T07:00",
			Completed:   true,
			CreatedAt:   createdAt,
		},
	}
}
