package handlers_fiber

import (
	"errors"
	"net/http"

	"github.com/draganvukman/task-management/internal/api"
	"github.com/draganvukman/task-management/internal/entities"

	"github.com/gofiber/fiber/v2"
)

// writeError maps domain errors to HTTP status and error code. Permission
// denials on tasks and teams are reported as plain not-found on purpose.
func writeError(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	code := api.INTERNAL
	msg := "internal error"

	switch {
	case errors.Is(err, entities.ErrInvalidArgument),
		errors.Is(err, entities.ErrWeakPassword),
		errors.Is(err, entities.ErrPasswordMismatch):
		status = http.StatusBadRequest
		code = api.VALIDATION
		msg = err.Error()
	case errors.Is(err, entities.ErrEmailTaken):
		status = http.StatusBadRequest
		code = api.EMAILTAKEN
		msg = "this email is already registered"
	case errors.Is(err, entities.ErrUsernameTaken):
		status = http.StatusBadRequest
		code = api.USERNAMETAKEN
		msg = "username already exists, please try again"
	case errors.Is(err, entities.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		code = api.UNAUTHORIZED
		msg = "invalid credentials"
	case errors.Is(err, entities.ErrInvalidToken):
		status = http.StatusUnauthorized
		code = api.UNAUTHORIZED
		msg = "invalid or expired token"
	case errors.Is(err, entities.ErrUserNotFound),
		errors.Is(err, entities.ErrTaskNotFound),
		errors.Is(err, entities.ErrTeamNotFound):
		status = http.StatusNotFound
		code = api.NOTFOUND
		msg = "resource not found"
	case errors.Is(err, entities.ErrCalendar):
		status = http.StatusBadRequest
		code = api.CALENDAR
		msg = err.Error()
	default:
		msg = err.Error()
	}

	return c.Status(status).JSON(errorResponse(code, msg))
}

func errorResponse(code api.ErrorResponseErrorCode, msg string) api.ErrorResponse {
	resp := api.ErrorResponse{}
	resp.Error.Code = code
	resp.Error.Message = msg
	return resp
}
