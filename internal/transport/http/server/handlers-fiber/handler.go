// Package handlers_fiber wires HTTP delivery components.
package handlers_fiber

import (
	"github.com/draganvukman/task-management/internal/transport/http/middleware"
	"github.com/draganvukman/task-management/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler implements the HTTP surface using service layer interfaces.
type Handler struct {
	log *zap.SugaredLogger
	uc  usecase.InterfaceUsecase
}

// NewHandler constructs an HTTP server with service dependencies.
func NewHandler(log *zap.SugaredLogger, usecase usecase.InterfaceUsecase) *Handler {
	return &Handler{
		log: log,
		uc:  usecase,
	}
}

// Register mounts all routes. Everything except registration and login sits
// behind the bearer-token middleware.
func (h *Handler) Register(app *fiber.App) {
	requireAuth := middleware.RequireAuth(h.log, h.uc)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", h.PostAuthRegister)
	authGroup.Post("/login", h.PostAuthLogin)
	authGroup.Post("/refresh", h.PostAuthRefresh)
	authGroup.Get("/me", requireAuth, h.GetAuthMe)
	authGroup.Put("/me", requireAuth, h.PutAuthMe)

	apiGroup := app.Group("/api", requireAuth)
	apiGroup.Get("/users/", h.GetUsers)

	apiGroup.Get("/tasks/", h.GetTasks)
	apiGroup.Post("/tasks/", h.PostTask)
	apiGroup.Get("/tasks/:id/", h.GetTask)
	apiGroup.Put("/tasks/:id/", h.PutTask)
	apiGroup.Delete("/tasks/:id/", h.DeleteTask)

	apiGroup.Get("/teams/", h.GetTeams)
	apiGroup.Post("/teams/", h.PostTeam)
	apiGroup.Get("/teams/:id/", h.GetTeam)
	apiGroup.Put("/teams/:id/", h.PutTeam)
	apiGroup.Delete("/teams/:id/", h.DeleteTeam)

	apiGroup.Get("/calendar/events", h.GetCalendarEvents)
	apiGroup.Post("/calendar/sync", h.PostCalendarSync)
}
