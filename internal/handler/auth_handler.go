package handler

import (
	"github.com/gofiber/fiber/v2"

	"go-catat-jualan/internal/logging"
	"go-catat-jualan/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
	log         logging.Logger
}

func NewAuthHandler(authService service.AuthService, log logging.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type ResetPasswordByUsernameRequest struct {
	Username    string `json:"username"`
	NewPassword string `json:"newPassword"`
}

// Register creates a seller account and logs it in
// POST /auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	response, err := h.authService.Register(c.UserContext(), &req)
	if err != nil {
		return respondError(c, h.log, err, "Registration failed")
	}
	return c.Status(fiber.StatusCreated).JSON(response)
}

// Login handles user authentication by username or email
// POST /auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	response, err := h.authService.Login(c.UserContext(), &req)
	if err != nil {
		return respondError(c, h.log, err, "Login failed")
	}
	return c.JSON(response)
}

// Me returns the current user
// GET /auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.authService.Me(c.UserContext(), getUserID(c))
	if err != nil {
		return respondError(c, h.log, err, "Failed to get user")
	}
	return c.JSON(fiber.Map{"user": user})
}

// UpdateMe changes fullName and/or email
// PATCH /auth/me
func (h *AuthHandler) UpdateMe(c *fiber.Ctx) error {
	var req service.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	user, err := h.authService.UpdateProfile(c.UserContext(), getUserID(c), &req)
	if err != nil {
		return respondError(c, h.log, err, "Update failed")
	}
	return c.JSON(fiber.Map{"user": user})
}

// Logout is a no-op; tokens are stateless and dropped by the client.
// POST /auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"ok": true})
}

// ForgotPassword issues a reset token when the email is known. The token is
// only echoed back when the service runs with reset tokens in responses.
// POST /auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	response, err := h.authService.ForgotPassword(c.UserContext(), req.Email)
	if err != nil {
		return respondError(c, h.log, err, "Failed to request password reset")
	}
	return c.JSON(response)
}

// ResetPassword sets a new password using a reset token
// POST /auth/reset-password
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	if err := h.authService.ResetPassword(c.UserContext(), req.Token, req.NewPassword); err != nil {
		return respondError(c, h.log, err, "Failed to reset password")
	}
	return c.JSON(fiber.Map{"ok": true})
}

// ResetPasswordByUsername lets an admin set any user's password
// POST /auth/reset-password-by-username
func (h *AuthHandler) ResetPasswordByUsername(c *fiber.Ctx) error {
	var req ResetPasswordByUsernameRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}

	if err := h.authService.ResetPasswordByUsername(c.UserContext(), req.Username, req.NewPassword); err != nil {
		return respondError(c, h.log, err, "Failed to reset password")
	}
	return c.JSON(fiber.Map{"ok": true})
}
