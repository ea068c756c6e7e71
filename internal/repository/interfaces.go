// Package repository contains repository interfaces for persistence layers.
package repository

import (
	"context"

	"github.com/draganvukman/task-management/internal/entities"
)

// LifecycleInterface describes storage startup/shutdown hooks.
type LifecycleInterface interface {
	OnStart(_ context.Context) error
	OnStop(_ context.Context) error
}

// UserInterface exposes user-related operations.
type UserInterface interface {
	CreateUser(ctx context.Context, user entities.User) (*entities.User, error)
	UserByID(ctx context.Context, id string) (*entities.User, error)
	UserByEmail(ctx context.Context, email string) (*entities.User, error)
	UpdateUserName(ctx context.Context, id, name string) (*entities.User, error)
	ListUsers(ctx context.Context) ([]entities.User, error)
}

// TokenInterface exposes refresh-token storage.
type TokenInterface interface {
	StoreRefreshToken(ctx context.Context, token entities.RefreshToken) error
	RefreshTokenByValue(ctx context.Context, token string) (*entities.RefreshToken, error)
	DeleteRefreshToken(ctx context.Context, token string) error
}

// TeamInterface exposes team-related operations. All reads and mutations are
// scoped to the caller's membership; a team invisible to the caller behaves
// as if it does not exist.
type TeamInterface interface {
	CreateTeam(ctx context.Context, name, creatorID string, memberIDs []string) (*entities.Team, error)
	TeamForMember(ctx context.Context, teamID int64, userID string) (*entities.Team, error)
	ListTeams(ctx context.Context, userID string) ([]entities.Team, error)
	UpdateTeam(ctx context.Context, teamID int64, callerID string, upd entities.TeamUpdate) (*entities.Team, error)
	DeleteTeam(ctx context.Context, teamID int64, callerID string) error
}

// TaskInterface exposes task-related operations. Reads and mutations apply the
// visibility predicate: caller is the creator or a member of the task's team.
type TaskInterface interface {
	CreateTask(ctx context.Context, task entities.Task) (*entities.Task, error)
	TaskForUser(ctx context.Context, taskID int64, userID string) (*entities.Task, error)
	ListTasks(ctx context.Context, userID string, filter entities.TaskFilter) ([]entities.Task, error)
	UpdateTask(ctx context.Context, taskID int64, callerID string, upd entities.TaskUpdate) (*entities.Task, error)
	DeleteTask(ctx context.Context, taskID int64, callerID string) error
}
