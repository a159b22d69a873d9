package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"go-catat-jualan/internal/logging"
	"go-catat-jualan/internal/service"
)

// Authenticator resolves an access token to a user id.
type Authenticator interface {
	Authenticate(token string) (string, error)
}

// AdminChecker is the admin predicate.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// BearerToken extracts the token from "Authorization: Bearer <token>".
func BearerToken(c *fiber.Ctx) string {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[len("Bearer "):])
}

// RequireAuth validates the bearer token and sets user_id in context
func RequireAuth(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := BearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing or invalid token"})
		}

		userID, err := auth.Authenticate(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		c.Locals("user_id", userID)
		return c.Next()
	}
}

// RequireStore answers 503 before any handler touches an unconfigured store.
func RequireStore(configured bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !configured {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Google Sheets not configured"})
		}
		return c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin(admins AdminChecker, log logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		ok, err := admins.IsAdmin(c.UserContext(), userID)
		if err != nil {
			log.Error(c.UserContext(), "admin check failed", "user_id", userID, "error", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": service.ErrForbidden.Error()})
		}
		return c.Next()
	}
}
