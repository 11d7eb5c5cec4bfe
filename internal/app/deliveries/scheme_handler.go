package deliveries

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/perkloop/perkloop-core/internal/app/middlewares"
	"github.com/perkloop/perkloop-core/internal/app/models"
	"github.com/perkloop/perkloop-core/internal/app/pkg"
	"github.com/perkloop/perkloop-core/internal/app/services"
)

type SchemeHandler struct {
	schemeService     *services.SchemeService
	redemptionService *services.RedemptionService
	authMiddleware    *middlewares.AuthMiddleware
}

func NewSchemeHandler(schemeService *services.SchemeService, redemptionService *services.RedemptionService, authMiddleware *middlewares.AuthMiddleware) *SchemeHandler {
	return &SchemeHandler{
		schemeService:     schemeService,
		redemptionService: redemptionService,
		authMiddleware:    authMiddleware,
	}
}

func (h *SchemeHandler) RegisterRoutes(router fiber.Router) {
	schemeGroup := router.Group("/schemes")

	// Public endpoints
	schemeGroup.Get("/", h.GetSchemes)

	// Protected endpoints
	schemeGroup.Get("/status", h.authMiddleware.AuthUser, h.GetStatus)
	schemeGroup.Get("/:id", h.GetScheme)
	schemeGroup.Post("/:id/redeem", h.authMiddleware.AuthUser, h.Redeem)

	// Admin endpoints
	schemeGroup.Post("/", h.authMiddleware.AuthUser, h.authMiddleware.AuthAdmin, h.CreateScheme)
	schemeGroup.Patch("/:id", h.authMiddleware.AuthUser, h.authMiddleware.AuthAdmin, h.UpdateScheme)
	schemeGroup.Delete("/:id", h.authMiddleware.AuthUser, h.authMiddleware.AuthAdmin, h.DeleteScheme)
}

func (h *SchemeHandler) GetSchemes(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil {
		limit = 10
	}

	schemes, err := h.schemeService.GetSchemes(&models.PaginationRequest{Page: page, Limit: limit})
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, schemes)
}

func (h *SchemeHandler) GetScheme(c *fiber.Ctx) error {
	id := c.Params("id")

	scheme, err := h.schemeService.GetScheme(id)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, scheme)
}

func (h *SchemeHandler) GetStatus(c *fiber.Ctx) error {
	email := c.Locals("email").(string)

	items, err := h.redemptionService.GetStatusByEmail(email)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, items)
}

func (h *SchemeHandler) Redeem(c *fiber.Ctx) error {
	email := c.Locals("email").(string)
	id := c.Params("id")

	redemption, err := h.redemptionService.Redeem(email, id)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, redemption)
}

func (h *SchemeHandler) CreateScheme(c *fiber.Ctx) error {
	var req models.SchemeCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	scheme, err := h.schemeService.CreateScheme(&req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.CreatedResponse(c, scheme)
}

func (h *SchemeHandler) UpdateScheme(c *fiber.Ctx) error {
	id := c.Params("id")

	var req models.SchemeUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	scheme, err := h.schemeService.UpdateScheme(id, &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, scheme)
}

func (h *SchemeHandler) DeleteScheme(c *fiber.Ctx) error {
	id := c.Params("id")

	if err := h.schemeService.DeleteScheme(id); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse[any](c, nil)
}
