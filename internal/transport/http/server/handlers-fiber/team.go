package handlers_fiber

import (
	"net/http"

	"github.com/draganvukman/task-management/internal/api"
	"github.com/draganvukman/task-management/internal/entities"
	"github.com/draganvukman/task-management/internal/mapper"
	"github.com/draganvukman/task-management/internal/transport/http/middleware"

	"github.com/gofiber/fiber/v2"
)

// PostTeam creates a team; the caller becomes a member.
func (h *Handler) PostTeam(c *fiber.Ctx) error {
	var body api.CreateTeamRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.VALIDATION, "invalid body"))
	}

	team, err := h.uc.CreateTeam(c.Context(), middleware.CallerID(c), body.Name, body.MemberIDs)
	if err != nil {
		h.log.Infow("failed to create team", "error", err.Error())
		return writeError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(mapper.ToAPITeam(*team))
}

// GetTeams lists teams the caller belongs to.
func (h *Handler) GetTeams(c *fiber.Ctx) error {
	teams, err := h.uc.Teams(c.Context(), middleware.CallerID(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(struct {
		Teams []api.Team `json:"teams"`
	}{Teams: mapper.ToAPITeamList(teams)})
}

// GetTeam returns one team with members; non-members see 404.
func (h *Handler) GetTeam(c *fiber.Ctx) error {
	teamID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.VALIDATION, "invalid team id"))
	}

	team, err := h.uc.Team(c.Context(), int64(teamID), middleware.CallerID(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(mapper.ToAPITeam(*team))
}

// PutTeam updates team fields for a member caller.
func (h *Handler) PutTeam(c *fiber.Ctx) error {
	teamID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.VALIDATION, "invalid team id"))
	}

	var body api.UpdateTeamRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.VALIDATION, "invalid body"))
	}

	team, err := h.uc.UpdateTeam(c.Context(), int64(teamID), middleware.CallerID(c), entities.TeamUpdate{
		Name:      body.Name,
		MemberIDs: body.MemberIDs,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(mapper.ToAPITeam(*team))
}

// DeleteTeam removes a team; its tasks survive with the reference cleared.
func (h *Handler) DeleteTeam(c *fiber.Ctx) error {
	teamID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.VALIDATION, "invalid team id"))
	}

	if err := h.uc.DeleteTeam(c.Context(), int64(teamID), middleware.CallerID(c)); err != nil {
		return writeError(c, err)
	}

	return c.SendStatus(http.StatusNoContent)
}
