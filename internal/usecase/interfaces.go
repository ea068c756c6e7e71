package usecase

import (
	"context"
	"time"

	"github.com/draganvukman/task-management/internal/entities"
)

// AuthUsecaseInterface abstracts registration, login and token lifecycle.
type AuthUsecaseInterface interface {
	Register(ctx context.Context, params entities.RegisterParams) (*entities.AuthResult, error)
	Login(ctx context.Context, email, password string) (*entities.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*entities.AuthResult, error)
	Authenticate(ctx context.Context, accessToken string) (*entities.User, error)
	Profile(ctx context.Context, userID string) (*entities.User, error)
	UpdateProfile(ctx context.Context, userID, name string) (*entities.User, error)
	Users(ctx context.Context) ([]entities.User, error)
}

// TeamUsecaseInterface abstracts team-related operations.
type TeamUsecaseInterface interface {
	CreateTeam(ctx context.Context, callerID, name string, memberIDs []string) (*entities.Team, error)
	Team(ctx context.Context, teamID int64, callerID string) (*entities.Team, error)
	Teams(ctx context.Context, callerID string) ([]entities.Team, error)
	UpdateTeam(ctx context.Context, teamID int64, callerID string, upd entities.TeamUpdate) (*entities.Team, error)
	DeleteTeam(ctx context.Context, teamID int64, callerID string) error
}

// TaskUsecaseInterface abstracts task-related operations.
type TaskUsecaseInterface interface {
	CreateTask(ctx context.Context, callerID string, draft entities.TaskDraft) (*entities.Task, error)
	Task(ctx context.Context, taskID int64, callerID string) (*entities.Task, error)
	Tasks(ctx context.Context, callerID string, filter entities.TaskFilter) ([]entities.Task, error)
	UpdateTask(ctx context.Context, taskID int64, callerID string, upd entities.TaskUpdate) (*entities.Task, error)
	DeleteTask(ctx context.Context, taskID int64, callerID string) error
}

// CalendarUsecaseInterface abstracts the external calendar bridge.
type CalendarUsecaseInterface interface {
	UpcomingEvents(ctx context.Context) ([]entities.CalendarEvent, error)
	SyncTask(ctx context.Context, title, description string, dueDate time.Time) (*entities.CalendarEvent, error)
}

// CalendarClient is the outbound contract consumed by the calendar usecase.
type CalendarClient interface {
	UpcomingEvents(ctx context.Context, maxResults int) ([]entities.CalendarEvent, error)
	CreateEvent(ctx context.Context, event entities.CalendarEvent) (*entities.CalendarEvent, error)
}
