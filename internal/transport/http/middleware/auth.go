package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/draganvukman/task-management/internal/api"
	"github.com/draganvukman/task-management/internal/entities"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Locals keys set by RequireAuth for downstream handlers.
const (
	UserIDKey = "user_id"
	UserKey   = "user"
)

// Authenticator resolves a bearer access token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (*entities.User, error)
}

// RequireAuth rejects requests without a valid bearer access token and stores
// the resolved user in the request locals.
func RequireAuth(log *zap.SugaredLogger, auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return unauthorized(c, "missing authorization header")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthorized(c, "malformed authorization header")
		}

		user, err := auth.Authenticate(c.Context(), parts[1])
		if err != nil {
			log.Infow("authentication rejected", "error", err.Error(), "path", c.Path())
			return unauthorized(c, "invalid or expired token")
		}

		c.Locals(UserIDKey, user.ID)
		c.Locals(UserKey, user)
		return c.Next()
	}
}

// CallerID returns the authenticated user id stored by RequireAuth.
func CallerID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDKey).(string)
	return id
}

func unauthorized(c *fiber.Ctx, msg string) error {
	resp := api.ErrorResponse{}
	resp.Error.Code = api.UNAUTHORIZED
	resp.Error.Message = msg
	return c.Status(http.StatusUnauthorized).JSON(resp)
}
