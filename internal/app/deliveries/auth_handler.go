package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/perkloop/perkloop-core/internal/app/middlewares"
	"github.com/perkloop/perkloop-core/internal/app/models"
	"github.com/perkloop/perkloop-core/internal/app/pkg"
	"github.com/perkloop/perkloop-core/internal/app/services"
)

type AuthHandler struct {
	authService    *services.AuthService
	authMiddleware *middlewares.AuthMiddleware
}

func NewAuthHandler(authService *services.AuthService, authMiddleware *middlewares.AuthMiddleware) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		authMiddleware: authMiddleware,
	}
}

func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authGroup := router.Group("/auth")

	authGroup.Post("/signup", h.Signup)
	authGroup.Post("/login", h.Login)
	authGroup.Post("/verify-email", h.VerifyEmail)
	authGroup.Post("/refresh", h.authMiddleware.AuthUser, h.Refresh)
	authGroup.Post("/forgot-password", h.ForgotPassword)
	authGroup.Post("/reset-password", h.ResetPassword)
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req models.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	pending, err := h.authService.Signup(&req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.CreatedResponse(c, pending)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	token, err := h.authService.Login(&req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, token)
}

func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	var req models.VerifyEmailRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	if err := h.authService.VerifyEmail(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, "Email verified")
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	email := c.Locals("email").(string)
	role := c.Locals("role").(models.UserRole)

	token, err := h.authService.Refresh(email, role)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, token)
}

func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req models.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	if err := h.authService.ForgotPassword(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, "OTP sent")
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req models.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	if err := h.authService.ResetPassword(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, "Password reset")
}
