package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/perkloop/perkloop-core/internal/app/middlewares"
	"github.com/perkloop/perkloop-core/internal/app/models"
	"github.com/perkloop/perkloop-core/internal/app/pkg"
	"github.com/perkloop/perkloop-core/internal/app/services"
)

type PointsHandler struct {
	pointsService  *services.PointsService
	balanceService *services.BalanceService
	authMiddleware *middlewares.AuthMiddleware
}

func NewPointsHandler(pointsService *services.PointsService, balanceService *services.BalanceService, authMiddleware *middlewares.AuthMiddleware) *PointsHandler {
	return &PointsHandler{
		pointsService:  pointsService,
		balanceService: balanceService,
		authMiddleware: authMiddleware,
	}
}

func (h *PointsHandler) RegisterRoutes(router fiber.Router) {
	pointsGroup := router.Group("/points")

	pointsGroup.Get("/", h.authMiddleware.AuthUser, h.GetPoints)
	pointsGroup.Put("/validate", h.authMiddleware.AuthUser, h.ScanCodes)
	pointsGroup.Put("/redeem", h.authMiddleware.AuthUser, h.RedeemPoints)
}

func (h *PointsHandler) GetPoints(c *fiber.Ctx) error {
	email := c.Locals("email").(string)

	points, err := h.balanceService.GetPoints(email)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, fiber.Map{"email": email, "points": points})
}

func (h *PointsHandler) ScanCodes(c *fiber.Ctx) error {
	email := c.Locals("email").(string)

	var req models.ScanCodesRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	result, err := h.pointsService.ScanCodes(email, &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, result)
}

func (h *PointsHandler) RedeemPoints(c *fiber.Ctx) error {
	email := c.Locals("email").(string)

	var req models.RedeemPointsRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	result, err := h.pointsService.RedeemPoints(email, &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, result)
}
