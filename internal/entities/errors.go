// Package entities contains core business entities and errors.
package entities

import "errors"

var (
	// ErrInvalidArgument signals failed input validation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrPasswordMismatch signals password and confirmation differ.
	ErrPasswordMismatch = errors.New("password mismatch")
	// ErrWeakPassword signals the password fails the strength policy.
	ErrWeakPassword = errors.New("weak password")
	// ErrEmailTaken signals the email is already registered.
	ErrEmailTaken = errors.New("email taken")
	// ErrUsernameTaken signals a username collision.
	ErrUsernameTaken = errors.New("username taken")
	// ErrInvalidCredentials signals a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken signals a missing, expired or malformed token.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrTeamNotFound signals a missing team or one the caller may not access.
	ErrTeamNotFound = errors.New("team not found")
	// ErrTaskNotFound signals a missing task or one the caller may not access.
	ErrTaskNotFound = errors.New("task not found")
	// ErrCalendar wraps failures of the external calendar collaborator.
	ErrCalendar = errors.New("calendar error")
)
