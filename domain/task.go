package domain

import (
	"strings"
	"time"
)

// Priority ranks a task for display and sorting by the caller.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority accepts the three known levels case-insensitively.
// An empty value defaults to medium.
func ParsePriority(value string) (Priority, error) {
	switch Priority(strings.ToLower(strings.TrimSpace(value))) {
	case "":
		return PriorityMedium, nil
	case PriorityLow:
		return PriorityLow, nil
	case PriorityMedium:
		return PriorityMedium, nil
	case PriorityHigh:
		return PriorityHigh, nil
	default:
		return "", NewError(ErrCodeInvalid, "unknown priority "+value)
	}
}

// dueLayouts are tried in order when reading a due date. The zone-less
// layouts match what a datetime-local form field produces.
var dueLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// Task represents a single to-do item in the user's list.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	Category    string    `json:"category"`
	DueDate     string    `json:"dueDate"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Due parses DueDate. The second result is false when no due date is set
// or the stored value cannot be read as a date.
func (t *Task) Due() (time.Time, bool) {
	if t == nil || t.DueDate == "" {
		return time.Time{}, false
	}
	return ParseDueDate(t.DueDate)
}

// IsOverdue reports whether an incomplete task's due date lies strictly
// before reference.
func (t *Task) IsOverdue(reference time.Time) bool {
	if t == nil || t.Completed {
		return false
	}
	due, ok := t.Due()
	if !ok {
		return false
	}
	return due.Before(reference)
}

// Matches reports whether term occurs in the title or description,
// ignoring case. An empty term matches everything.
func (t *Task) Matches(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(t.Title), term) ||
		strings.Contains(strings.ToLower(t.Description), term)
}

// Draft returns the editable fields of the task.
func (t *Task) Draft() Draft {
	return Draft{
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		Category:    t.Category,
		DueDate:     t.DueDate,
	}
}

// Draft carries the user-editable fields of a task.
type Draft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	Category    string   `json:"category"`
	DueDate     string   `json:"dueDate"`
}

// Normalize checks title presence and resolves the priority.
func (d Draft) Normalize() (Draft, error) {
	if strings.TrimSpace(d.Title) == "" {
		return d, ErrTitleRequired
	}
	priority, err := ParsePriority(string(d.Priority))
	if err != nil {
		return d, err
	}
	d.Priority = priority
	return d, nil
}

// ParseDueDate reads a due date in any of the accepted layouts. Layouts
// without a zone are interpreted in local time.
func ParseDueDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dueLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// Stats aggregates counts over a whole task list.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
}

// ComputeStats counts tasks by state. Overdue is evaluated at reference.
func ComputeStats(tasks []Task, reference time.Time) Stats {
	var stats Stats
	stats.Total = len(tasks)
	for i := range tasks {
		if tasks[i].Completed {
			stats.Completed++
		}
		if tasks[i].IsOverdue(reference) {
			stats.Overdue++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	return stats
}
