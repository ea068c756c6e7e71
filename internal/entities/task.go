// Package entities contains core business entities.
package entities

import "time"

// Status is the single-letter task workflow state.
type Status string

// Priority is the single-letter task priority.
type Priority string

const (
	StatusTodo       Status = "T"
	StatusInProgress Status = "P"
	StatusDone       Status = "D"

	PriorityHigh   Priority = "H"
	PriorityMedium Priority = "M"
	PriorityLow    Priority = "L"
)

// Valid reports whether the status is one of the known states.
func (s Status) Valid() bool {
	return s == StatusTodo || s == StatusInProgress || s == StatusDone
}

// Valid reports whether the priority is one of the known levels.
func (p Priority) Valid() bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Task is a work item owned by its creator and optionally assigned to a team.
// The creator is fixed at creation; the team reference is nullable and
// survives team deletion by being cleared.
type Task struct {
	ID          int64
	Title       string
	Description string
	Status      Status
	Priority    Priority
	DueDate     *time.Time
	CreatedBy   User
	Team        *Team
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskUpdate carries mutable task fields; nil means "leave unchanged".
// TeamID distinguishes absent (leave) from present-nil (clear) via SetTeam.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *Status
	Priority    *Priority
	DueDate     *time.Time
	ClearDue    bool
	SetTeam     bool
	TeamID      *int64
}

// TaskFilter narrows the visible task set. Zero values mean "no constraint".
type TaskFilter struct {
	Status     Status
	Priority   Priority
	TeamID     int64
	DueDate    *time.Time
	DueDateGTE *time.Time
	DueDateLTE *time.Time
	Search     string
}
