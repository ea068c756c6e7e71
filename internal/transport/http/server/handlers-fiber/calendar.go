package handlers_fiber

import (
	"net/http"
	"time"

	"github.com/draganvukman/task-management/internal/api"
	"github.com/draganvukman/task-management/internal/mapper"

	"github.com/gofiber/fiber/v2"
)

// GetCalendarEvents returns upcoming events from the connected calendar.
func (h *Handler) GetCalendarEvents(c *fiber.Ctx) error {
	events, err := h.uc.UpcomingEvents(c.Context())
	if err != nil {
		h.log.Infow("failed to fetch calendar events", "error", err.Error())
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(struct {
		Events []api.CalendarEvent `json:"events"`
	}{Events: mapper.ToAPICalendarEventList(events)})
}

// PostCalendarSync mirrors a task as a one-hour calendar event at its due date.
func (h *Handler) PostCalendarSync(c *fiber.Ctx) error {
	var body api.SyncTaskRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.VALIDATION, "invalid body"))
	}
	due, err := parseSyncDue(body.DueDate)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.VALIDATION, "invalid due_date"))
	}

	event, err := h.uc.SyncTask(c.Context(), body.Title, body.Description, due)
	if err != nil {
		h.log.Infow("failed to sync task to calendar", "error", err.Error())
		return writeError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(mapper.ToAPICalendarEvent(*event))
}

// parseSyncDue accepts either a bare date or a full RFC 3339 timestamp.
func parseSyncDue(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return mapper.ParseDate(s)
}
