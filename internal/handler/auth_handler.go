package handler

import (
	"errors"

	"github.com/Innie12/Inventory-Management-System/internal/middleware"
	"github.com/Innie12/Inventory-Management-System/internal/service"
	"github.com/Innie12/Inventory-Management-System/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService  *service.AuthService
	auditService *service.AuditService
}

func NewAuthHandler(authService *service.AuthService, auditService *service.AuditService) *AuthHandler {
	return &AuthHandler{authService: authService, auditService: auditService}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles self-registration
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterInput
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Validation failed", "details": errs})
	}

	user, err := h.authService.Register(req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken),
			errors.Is(err, service.ErrEmailTaken),
			errors.Is(err, service.ErrPhoneTaken):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Failed to create account"})
		}
	}

	h.auditService.Record(&user.ID, service.AuditActionRegister, "user", &user.ID,
		"account created", c.IP(), c.Get("User-Agent"))

	return c.Status(201).JSON(fiber.Map{"user": user.ToResponse()})
}

// Login handles user authentication
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.Username == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Username and password are required"})
	}

	token, user, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAccountDisabled):
			return c.Status(403).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidCredentials):
			return c.Status(401).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Login failed"})
		}
	}

	h.auditService.Record(&user.ID, service.AuditActionLogin, "user", &user.ID,
		"logged in", c.IP(), c.Get("User-Agent"))

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user.ToResponse(),
	})
}

// ForgotPassword starts OTP recovery. Always answers 200 so callers cannot
// probe which phone numbers exist.
// POST /api/v1/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Phone == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Phone number is required"})
	}

	if err := h.authService.ForgotPassword(c.Context(), req.Phone); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to send verification code"})
	}

	return c.JSON(fiber.Map{"message": "If the number is registered, a verification code has been sent"})
}

// VerifyOTP trades a valid code for a short-lived reset token
// POST /api/v1/auth/verify-otp
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req struct {
		Phone string `json:"phone"`
		Code  string `json:"code"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Phone == "" || req.Code == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Phone and code are required"})
	}

	resetToken, err := h.authService.VerifyOTP(req.Phone, req.Code)
	if err != nil {
		if errors.Is(err, service.ErrInvalidOTP) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Verification failed"})
	}

	return c.JSON(fiber.Map{"reset_token": resetToken})
}

// ResetPassword consumes a reset token and sets the new password
// POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req struct {
		ResetToken  string `json:"reset_token"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.ResetToken == "" || req.NewPassword == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Reset token and new password are required"})
	}
	if len(req.NewPassword) < 8 {
		return c.Status(400).JSON(fiber.Map{"error": "New password must be at least 8 characters"})
	}

	if err := h.authService.ResetPassword(req.ResetToken, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrInvalidResetToken) {
			return c.Status(401).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to reset password"})
	}

	h.auditService.Record(nil, service.AuditActionResetPass, "user", nil,
		"password reset via otp", c.IP(), c.Get("User-Agent"))

	return c.JSON(fiber.Map{"message": "Password updated successfully"})
}

// Me returns the authenticated user's profile
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}
	return c.JSON(fiber.Map{"user": user.ToResponse()})
}
