package task

// NoticeKind is the display category of a notice.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeInfo    NoticeKind = "info"
)

// Notice is the short user-facing message produced by a mutation.
type Notice struct {
	Message string     `json:"message"`
	Kind    NoticeKind `json:"kind"`
}

var (
	NoticeAdded     = Notice{Message: "Task added successfully!", Kind: NoticeSuccess}
	NoticeUpdated   = Notice{Message: "Task updated successfully!", Kind: NoticeSuccess}
	NoticeDeleted   = Notice{Message: "Task deleted successfully!", Kind: NoticeInfo}
	NoticeCompleted = Notice{Message: "Task completed!", Kind: NoticeSuccess}
	NoticeReopened  = Notice{Message: "Task reopened!", Kind: NoticeInfo}
	NoticeEditing   = Notice{Message: "Task loaded for editing!", Kind: NoticeInfo}
	NoticeReordered = Notice{Message: "Tasks reordered!", Kind: NoticeInfo}
)

// ToggleNotice picks the notice matching the state a toggle reached.
func ToggleNotice(completed bool) Notice {
	if completed {
		return NoticeCompleted
	}
	return NoticeReopened
}
