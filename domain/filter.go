package domain

import "time"

// FilterKind selects how a Filter narrows a list.
type FilterKind int

const (
	FilterAll FilterKind = iota
	FilterPending
	FilterCompleted
	FilterOverdue
	FilterCategory
)

// Filter is either one of the fixed status filters or a category filter
// carrying the category name.
type Filter struct {
	Kind     FilterKind
	Category string
}

// ByCategory builds a filter keeping tasks whose category equals name.
func ByCategory(name string) Filter {
	return Filter{Kind: FilterCategory, Category: name}
}

// ParseFilter maps a filter key to a Filter. Any key other than the fixed
// statuses is a category name; the empty key means all.
func ParseFilter(key string) Filter {
	switch key {
	case "", "all":
		return Filter{Kind: FilterAll}
	case "pending":
		return Filter{Kind: FilterPending}
	case "completed":
		return Filter{Kind: FilterCompleted}
	case "overdue":
		return Filter{Kind: FilterOverdue}
	default:
		return ByCategory(key)
	}
}

// String returns the key ParseFilter would map back to f.
func (f Filter) String() string {
	switch f.Kind {
	case FilterPending:
		return "pending"
	case FilterCompleted:
		return "completed"
	case FilterOverdue:
		return "overdue"
	case FilterCategory:
		return f.Category
	default:
		return "all"
	}
}

// Keep reports whether task passes the filter at reference time.
func (f Filter) Keep(task *Task, reference time.Time) bool {
	switch f.Kind {
	case FilterPending:
		return !task.Completed
	case FilterCompleted:
		return task.Completed
	case FilterOverdue:
		return task.IsOverdue(reference)
	case FilterCategory:
		return task.Category == f.Category
	default:
		return true
	}
}

// Apply narrows tasks by search term and then by filter, preserving order.
func Apply(tasks []Task, f Filter, search string, reference time.Time) []Task {
	out := make([]Task, 0, len(tasks))
	for i := range tasks {
		if !tasks[i].Matches(search) {
			continue
		}
		if !f.Keep(&tasks[i], reference) {
			continue
		}
		out = append(out, tasks[i])
	}
	return out
}
