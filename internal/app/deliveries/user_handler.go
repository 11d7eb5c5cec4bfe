package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/perkloop/perkloop-core/internal/app/middlewares"
	"github.com/perkloop/perkloop-core/internal/app/pkg"
	"github.com/perkloop/perkloop-core/internal/app/services"
)

type UserHandler struct {
	userService    *services.UserService
	authMiddleware *middlewares.AuthMiddleware
}

func NewUserHandler(userService *services.UserService, authMiddleware *middlewares.AuthMiddleware) *UserHandler {
	return &UserHandler{
		userService:    userService,
		authMiddleware: authMiddleware,
	}
}

func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userGroup := router.Group("/users")

	userGroup.Get("/me", h.authMiddleware.AuthUser, h.GetMe)
}

func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	email := c.Locals("email").(string)

	profile, err := h.userService.GetProfile(email)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, profile)
}
