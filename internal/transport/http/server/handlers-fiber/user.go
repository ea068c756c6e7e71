package handlers_fiber

import (
	"net/http"

	"github.com/draganvukman/task-management/internal/api"
	"github.com/draganvukman/task-management/internal/mapper"

	"github.com/gofiber/fiber/v2"
)

// GetUsers lists all registered users, used for picking team members.
func (h *Handler) GetUsers(c *fiber.Ctx) error {
	users, err := h.uc.Users(c.Context())
	if err != nil {
		h.log.Errorw("failed to list users", "error", err.Error())
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(struct {
		Users []api.User `json:"users"`
	}{Users: mapper.ToAPIUserList(users)})
}
