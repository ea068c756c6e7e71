package handlers_fiber

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/draganvukman/task-management/internal/api"
	"github.com/draganvukman/task-management/internal/entities"
	"github.com/draganvukman/task-management/internal/mapper"
	"github.com/draganvukman/task-management/internal/transport/http/middleware"

	"github.com/gofiber/fiber/v2"
)

// PostTask creates a task; the creator is always the caller.
func (h *Handler) PostTask(c *fiber.Ctx) error {
	var body api.CreateTaskRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.VALIDATION, "invalid body"))
	}

	draft := entities.TaskDraft{
		Title:       body.Title,
		Description: body.Description,
		Status:      entities.Status(body.Status),
		Priority:    entities.Priority(body.Priority),
		TeamID:      body.TeamID,
	}
	if body.DueDate != nil {
		due, err := mapper.ParseDate(*body.DueDate)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(errorResponse(api.VALIDATION, "invalid due_date, expected YYYY-MM-DD"))
		}
		draft.DueDate = &due
	}

	task, err := h.uc.CreateTask(c.Context(), middleware.CallerID(c), draft)
	if err != nil {
		h.log.Infow("failed to create task", "error", err.Error())
		return writeError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(mapper.ToAPITask(*task))
}

// GetTasks lists tasks visible to the caller, narrowed by query filters.
func (h *Handler) GetTasks(c *fiber.Ctx) error {
	filter, err := parseTaskFilter(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.VALIDATION, err.Error()))
	}

	tasks, err := h.uc.Tasks(c.Context(), middleware.CallerID(c), filter)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(struct {
		Tasks []api.Task `json:"tasks"`
	}{Tasks: mapper.ToAPITaskList(tasks)})
}

// GetTask returns one task; tasks outside the caller's visible set are 404.
func (h *Handler) GetTask(c *fiber.Ctx) error {
	taskID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.VALIDATION, "invalid task id"))
	}

	task, err := h.uc.Task(c.Context(), int64(taskID), middleware.CallerID(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(mapper.ToAPITask(*task))
}

// PutTask updates a visible task. A null team_id detaches the task from its
// team, an absent one leaves it alone; same for due_date.
func (h *Handler) PutTask(c *fiber.Ctx) error {
	taskID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.VALIDATION, "invalid task id"))
	}

	var body api.UpdateTaskRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.VALIDATION, "invalid body"))
	}

	upd := entities.TaskUpdate{
		Title:       body.Title,
		Description: body.Description,
	}
	if body.Status != nil {
		status := entities.Status(*body.Status)
		upd.Status = &status
	}
	if body.Priority != nil {
		priority := entities.Priority(*body.Priority)
		upd.Priority = &priority
	}
	if body.DueDate.Set {
		if body.DueDate.Valid {
			due, err := mapper.ParseDate(body.DueDate.Value)
			if err != nil {
				return c.Status(http.StatusBadRequest).JSON(errorResponse(api.VALIDATION, "invalid due_date, expected YYYY-MM-DD"))
			}
			upd.DueDate = &due
		} else {
			upd.ClearDue = true
		}
	}
	if body.TeamID.Set {
		upd.SetTeam = true
		if body.TeamID.Valid {
			teamID := body.TeamID.Value
			upd.TeamID = &teamID
		}
	}

	task, err := h.uc.UpdateTask(c.Context(), int64(taskID), middleware.CallerID(c), upd)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(mapper.ToAPITask(*task))
}

// DeleteTask removes a visible task permanently.
func (h *Handler) DeleteTask(c *fiber.Ctx) error {
	taskID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.VALIDATION, "invalid task id"))
	}

	if err := h.uc.DeleteTask(c.Context(), int64(taskID), middleware.CallerID(c)); err != nil {
		return writeError(c, err)
	}

	return c.SendStatus(http.StatusNoContent)
}

// parseTaskFilter reads list filters from query parameters.
func parseTaskFilter(c *fiber.Ctx) (entities.TaskFilter, error) {
	var filter entities.TaskFilter

	if v := c.Query("status"); v != "" {
		status := entities.Status(v)
		if !status.Valid() {
			return filter, errInvalidFilter("status")
		}
		filter.Status = status
	}
	if v := c.Query("priority"); v != "" {
		priority := entities.Priority(v)
		if !priority.Valid() {
			return filter, errInvalidFilter("priority")
		}
		filter.Priority = priority
	}
	// team and team_id are the same constraint under two historical names;
	// conflicting values cannot intersect to anything, so reject them.
	if a, b := c.Query("team"), c.Query("team_id"); a != "" && b != "" && a != b {
		return filter, fmt.Errorf("conflicting team and team_id filter values")
	}
	for _, name := range []string{"team", "team_id"} {
		v := c.Query(name)
		if v == "" {
			continue
		}
		teamID, err := strconv.ParseInt(v, 10, 64)
		if err != nil || teamID <= 0 {
			return filter, errInvalidFilter(name)
		}
		filter.TeamID = teamID
	}

	dates := []struct {
		name string
		dst  **time.Time
	}{
		{"due_date", &filter.DueDate},
		{"due_date__gte", &filter.DueDateGTE},
		{"due_date__lte", &filter.DueDateLTE},
	}
	for _, d := range dates {
		v := c.Query(d.name)
		if v == "" {
			continue
		}
		parsed, err := mapper.ParseDate(v)
		if err != nil {
			return filter, errInvalidFilter(d.name)
		}
		*d.dst = &parsed
	}

	filter.Search = c.Query("search")

	return filter, nil
}

func errInvalidFilter(name string) error {
	return fmt.Errorf("invalid filter value for %s", name)
}
