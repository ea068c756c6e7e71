// Package api defines the HTTP wire models shared by handlers and clients.
package api

import "time"

// ErrorResponseErrorCode is a machine-readable error discriminator.
type ErrorResponseErrorCode string

const (
	VALIDATION    ErrorResponseErrorCode = "VALIDATION"
	EMAILTAKEN    ErrorResponseErrorCode = "EMAIL_TAKEN"
	USERNAMETAKEN ErrorResponseErrorCode = "USERNAME_TAKEN"
	UNAUTHORIZED  ErrorResponseErrorCode = "UNAUTHORIZED"
	NOTFOUND      ErrorResponseErrorCode = "NOT_FOUND"
	CALENDAR      ErrorResponseErrorCode = "CALENDAR"
	INTERNAL      ErrorResponseErrorCode = "INTERNAL"
)

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error struct {
		Code    ErrorResponseErrorCode `json:"code"`
		Message string                 `json:"message"`
	} `json:"error"`
}

// User is the public user representation. The password never appears here.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Team carries a team with its materialized member list.
type Team struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Members   []User    `json:"members"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Task is the task wire representation.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	Priority    string    `json:"priority"`
	DueDate     *string   `json:"due_date"`
	CreatedBy   User      `json:"created_by"`
	Team        *Team     `json:"team"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RegisterRequest is the self-service registration body.
type RegisterRequest struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

// LoginRequest carries email/password credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest carries the refresh token to rotate.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// AuthResponse is the token pair returned by register, login and refresh.
type AuthResponse struct {
	User         User   `json:"user"`
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// UpdateProfileRequest carries mutable profile fields.
type UpdateProfileRequest struct {
	Name string `json:"name"`
}

// CreateTeamRequest creates a team; the caller is always added as a member.
type CreateTeamRequest struct {
	Name      string   `json:"name"`
	MemberIDs []string `json:"member_ids"`
}

// UpdateTeamRequest mutates team fields; absent fields are left unchanged.
type UpdateTeamRequest struct {
	Name      *string   `json:"name"`
	MemberIDs *[]string `json:"member_ids"`
}

// CreateTaskRequest creates a task; created_by is forced to the caller.
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date"`
	TeamID      *int64  `json:"team_id"`
}

// UpdateTaskRequest mutates task fields; absent fields are left unchanged.
// A present-but-null team_id clears the team reference.
type UpdateTaskRequest struct {
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Status      *string         `json:"status"`
	Priority    *string         `json:"priority"`
	DueDate     OptionalString  `json:"due_date"`
	TeamID      OptionalInt64   `json:"team_id"`
}

// CalendarEvent is the external event representation passed through to callers.
type CalendarEvent struct {
	ID          string `json:"id"`
	Summary     string `json:"summary"`
	Description string `json:"description,omitempty"`
	Start       string `json:"start"`
	End         string `json:"end"`
	HTMLLink    string `json:"html_link,omitempty"`
}

// SyncTaskRequest asks the bridge to mirror a task as a calendar event.
type SyncTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
}
