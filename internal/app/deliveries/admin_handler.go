package deliveries

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/perkloop/perkloop-core/internal/app/middlewares"
	"github.com/perkloop/perkloop-core/internal/app/models"
	"github.com/perkloop/perkloop-core/internal/app/pkg"
	"github.com/perkloop/perkloop-core/internal/app/services"
)

type AdminHandler struct {
	userService       *services.UserService
	redemptionService *services.RedemptionService
	pointsService     *services.PointsService
	authMiddleware    *middlewares.AuthMiddleware
}

func NewAdminHandler(userService *services.UserService, redemptionService *services.RedemptionService, pointsService *services.PointsService, authMiddleware *middlewares.AuthMiddleware) *AdminHandler {
	return &AdminHandler{
		userService:       userService,
		redemptionService: redemptionService,
		pointsService:     pointsService,
		authMiddleware:    authMiddleware,
	}
}

func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	adminGroup := router.Group("/admin", h.authMiddleware.AuthUser, h.authMiddleware.AuthAdmin)

	adminGroup.Get("/signups", h.GetPendingSignups)
	adminGroup.Post("/signups/decide", h.DecideSignup)
	adminGroup.Get("/redemptions", h.GetPendingRedemptions)
	adminGroup.Post("/redemptions/decide", h.DecideRedemption)
	adminGroup.Post("/codes", h.CreateCode)
	adminGroup.Get("/users/top", h.GetTopUsers)
	adminGroup.Patch("/users/:email", h.UpdateUser)
	adminGroup.Delete("/users/:email", h.DeleteUser)
}

func (h *AdminHandler) GetPendingSignups(c *fiber.Ctx) error {
	signups, err := h.userService.GetPendingSignups()
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, signups)
}

func (h *AdminHandler) DecideSignup(c *fiber.Ctx) error {
	var req models.SignupDecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	signup, err := h.userService.DecideSignup(&req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, signup)
}

func (h *AdminHandler) GetPendingRedemptions(c *fiber.Ctx) error {
	redemptions, err := h.redemptionService.GetPendingRedemptions()
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, redemptions)
}

func (h *AdminHandler) DecideRedemption(c *fiber.Ctx) error {
	var req models.RedemptionDecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	redemption, err := h.redemptionService.Decide(&req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, redemption)
}

func (h *AdminHandler) CreateCode(c *fiber.Ctx) error {
	var req models.PointCodeCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	code, err := h.pointsService.CreateCode(&req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.CreatedResponse(c, code)
}

func (h *AdminHandler) GetTopUsers(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil {
		limit = 10
	}

	users, err := h.userService.GetTopUsers(limit)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, users)
}

func (h *AdminHandler) UpdateUser(c *fiber.Ctx) error {
	email := c.Params("email")

	var req models.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	profile, err := h.userService.UpdateUser(email, &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, profile)
}

func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	email := c.Params("email")

	if err := h.userService.DeleteUser(email); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse[any](c, nil)
}
