package handlers_fiber

import (
	"net/http"

	"github.com/draganvukman/task-management/internal/api"
	"github.com/draganvukman/task-management/internal/entities"
	"github.com/draganvukman/task-management/internal/mapper"
	"github.com/draganvukman/task-management/internal/transport/http/middleware"

	"github.com/gofiber/fiber/v2"
)

// PostAuthRegister creates an account and returns a token pair.
func (h *Handler) PostAuthRegister(c *fiber.Ctx) error {
	var body api.RegisterRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.VALIDATION, "invalid body"))
	}

	result, err := h.uc.Register(c.Context(), entities.RegisterParams{
		Email:     body.Email,
		Name:      body.Name,
		Password:  body.Password,
		Password2: body.Password2,
	})
	if err != nil {
		h.log.Infow("registration failed", "error", err.Error(), "email", body.Email)
		return writeError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(authResponse(result))
}

// PostAuthLogin authenticates by email and password.
func (h *Handler) PostAuthLogin(c *fiber.Ctx) error {
	var body api.LoginRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.VALIDATION, "invalid body"))
	}

	result, err := h.uc.Login(c.Context(), body.Email, body.Password)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(authResponse(result))
}

// PostAuthRefresh rotates a refresh token and returns a fresh pair.
func (h *Handler) PostAuthRefresh(c *fiber.Ctx) error {
	var body api.RefreshRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.VALIDATION, "invalid body"))
	}

	result, err := h.uc.Refresh(c.Context(), body.RefreshToken)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(authResponse(result))
}

// GetAuthMe returns the caller's own account.
func (h *Handler) GetAuthMe(c *fiber.Ctx) error {
	user, err := h.uc.Profile(c.Context(), middleware.CallerID(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(struct {
		User api.User `json:"user"`
	}{User: mapper.ToAPIUser(*user)})
}

// PutAuthMe updates the caller's display name.
func (h *Handler) PutAuthMe(c *fiber.Ctx) error {
	var body api.UpdateProfileRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(http.StatusBadRequest).JSON(errorResponse(api.VALIDATION, "invalid body"))
	}

	user, err := h.uc.UpdateProfile(c.Context(), middleware.CallerID(c), body.Name)
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(http.StatusOK).JSON(struct {
		User api.User `json:"user"`
	}{User: mapper.ToAPIUser(*user)})
}

func authResponse(result *entities.AuthResult) api.AuthResponse {
	return api.AuthResponse{
		User:         mapper.ToAPIUser(result.User),
		Token:        result.AccessToken,
		RefreshToken: result.RefreshToken,
	}
}
