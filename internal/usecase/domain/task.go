// Package domain contains application usecases orchestrating domain logic by task.
package domain

import (
	"context"
	"fmt"

	"github.com/draganvukman/task-management/internal/entities"
)

// CreateTask creates a task owned by the caller. Defaults: status To Do,
// priority Medium. Membership of the assigned team is deliberately not
// checked; visibility rules apply on every later read.
func (u *Usecase) CreateTask(ctx context.Context, callerID string, draft entities.TaskDraft) (*entities.Task, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if draft.Title == "" {
		u.log.Errorw("failed to create task: missing title")
		return nil, fmt.Errorf("%w: title is required", entities.ErrInvalidArgument)
	}
	if draft.Status == "" {
		draft.Status = entities.StatusTodo
	}
	if draft.Priority == "" {
		draft.Priority = entities.PriorityMedium
	}
	if !draft.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", entities.ErrInvalidArgument, draft.Status)
	}
	if !draft.Priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", entities.ErrInvalidArgument, draft.Priority)
	}

	task := entities.Task{
		Title:       draft.Title,
		Description: draft.Description,
		Status:      draft.Status,
		Priority:    draft.Priority,
		DueDate:     draft.DueDate,
		CreatedBy:   entities.User{ID: callerID},
	}
	if draft.TeamID != nil {
		task.Team = &entities.Team{ID: *draft.TeamID}
	}

	return u.repo.CreateTask(ctx, task)
}

// Task returns a single task visible to the caller.
func (u *Usecase) Task(ctx context.Context, taskID int64, callerID string) (*entities.Task, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if taskID <= 0 {
		return nil, fmt.Errorf("%w: task id is required", entities.ErrInvalidArgument)
	}
	return u.repo.TaskForUser(ctx, taskID, callerID)
}

// Tasks lists visible tasks narrowed by the filter.
func (u *Usecase) Tasks(ctx context.Context, callerID string, filter entities.TaskFilter) ([]entities.Task, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", entities.ErrInvalidArgument, filter.Status)
	}
	if filter.Priority != "" && !filter.Priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", entities.ErrInvalidArgument, filter.Priority)
	}

	return u.repo.ListTasks(ctx, callerID, filter)
}

// UpdateTask applies field updates under the visibility rule.
func (u *Usecase) UpdateTask(ctx context.Context, taskID int64, callerID string, upd entities.TaskUpdate) (*entities.Task, error) {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if taskID <= 0 {
		return nil, fmt.Errorf("%w: task id is required", entities.ErrInvalidArgument)
	}
	if upd.Title != nil && *upd.Title == "" {
		return nil, fmt.Errorf("%w: title must not be empty", entities.ErrInvalidArgument)
	}
	if upd.Status != nil && !upd.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", entities.ErrInvalidArgument, *upd.Status)
	}
	if upd.Priority != nil && !upd.Priority.Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", entities.ErrInvalidArgument, *upd.Priority)
	}

	return u.repo.UpdateTask(ctx, taskID, callerID, upd)
}

// DeleteTask hard-deletes a task visible to the caller.
func (u *Usecase) DeleteTask(ctx context.Context, taskID int64, callerID string) error {
	ctx, cancel := withTimeout(ctx, u.timeout)
	defer cancel()

	if taskID <= 0 {
		return fmt.Errorf("%w: task id is required", entities.ErrInvalidArgument)
	}
	return u.repo.DeleteTask(ctx, taskID, callerID)
}
