package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"go-catat-jualan/internal/logging"
	"go-catat-jualan/internal/service"
)

// Helper untuk ambil user id dari context (set by RequireAuth)
func getUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}

// paramID copies the :id route param out of fasthttp's reused request buffer.
func paramID(c *fiber.Ctx) string {
	return utils.CopyString(c.Params("id"))
}

func invalidJSON(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
}

// statusFor maps service errors to HTTP codes.
func statusFor(err error) int {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrInvalidResetToken):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		return fiber.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrTransactionNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return fiber.StatusNotFound
	}
	return fiber.StatusInternalServerError
}

// respondError writes {"error": msg}. Unexpected errors are logged and
// fall back to a generic message when they carry none.
func respondError(c *fiber.Ctx, log logging.Logger, err error, fallback string) error {
	status := statusFor(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		log.Error(c.UserContext(), "request failed",
			"method", c.Method(), "path", c.Path(), "user_id", getUserID(c), "error", err)
		if msg == "" {
			msg = fallback
		}
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}
