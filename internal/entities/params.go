// Package entities contains core business entities.
package entities

import "time"

// RegisterParams carries registration input through the usecase layer.
type RegisterParams struct {
	Email     string
	Name      string
	Password  string
	Password2 string
}

// TaskDraft is the creation input for a task. The creator is always the
// authenticated caller; a creator supplied by the request is ignored before
// this struct is built.
type TaskDraft struct {
	Title       string
	Description string
	Status      Status
	Priority    Priority
	DueDate     *time.Time
	TeamID      *int64
}
