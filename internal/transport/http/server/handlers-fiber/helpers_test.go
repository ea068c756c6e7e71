package handlers_fiber

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/draganvukman/task-management/internal/api"
	"github.com/draganvukman/task-management/internal/entities"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestWriteErrorEmailTaken(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return writeError(c, entities.ErrEmailTaken)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body api.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, api.EMAILTAKEN, body.Error.Code)
	require.Equal(t, "this email is already registered", body.Error.Message)
}

func TestWriteErrorNotFoundMasksOwnership(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "task", err: entities.ErrTaskNotFound},
		{name: "team", err: entities.ErrTeamNotFound},
		{name: "user", err: entities.ErrUserNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return writeError(c, tt.err)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, http.StatusNotFound, resp.StatusCode)

			var body api.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			require.Equal(t, api.NOTFOUND, body.Error.Code)
			require.Equal(t, "resource not found", body.Error.Message)
		})
	}
}

func TestWriteErrorUnauthorized(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "credentials", err: entities.ErrInvalidCredentials, expected: "invalid credentials"},
		{name: "token", err: entities.ErrInvalidToken, expected: "invalid or expired token"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return writeError(c, tt.err)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

			var body api.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			require.Equal(t, api.UNAUTHORIZED, body.Error.Code)
			require.Equal(t, tt.expected, body.Error.Message)
		})
	}
}

func TestWriteErrorCalendarBridge(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return writeError(c, entities.ErrCalendar)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body api.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, api.CALENDAR, body.Error.Code)
}
