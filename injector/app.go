package injector

import (
	"github.com/gofiber/fiber/v2"
	"github.com/perkloop/perkloop-core/internal/app/deliveries"
	"github.com/perkloop/perkloop-core/internal/app/middlewares"
)

// Application represents the main application container for perkloop-core
type Application struct {
	HealthHandler       *deliveries.HealthHandler
	AuthHandler         *deliveries.AuthHandler
	PointsHandler       *deliveries.PointsHandler
	SchemeHandler       *deliveries.SchemeHandler
	AdminHandler        *deliveries.AdminHandler
	UserHandler         *deliveries.UserHandler
	RateLimitMiddleware *middlewares.RateLimitMiddleware
}

// RegisterRoutes registers all application routes using a Fiber router
func (app *Application) RegisterRoutes(router fiber.Router) {
	// Apply global rate limit for public API
	router.Use(app.RateLimitMiddleware.LimitByIP(middlewares.PublicAPILimit))

	// Auth endpoints with stricter rate limit
	authGroup := router.Group("/auth")
	authGroup.Use(app.RateLimitMiddleware.LimitByIP(middlewares.AuthLimit))

	// Protected API endpoints with user-based rate limit
	protectedGroup := router.Group("")
	protectedGroup.Use(app.RateLimitMiddleware.LimitByUser(middlewares.AuthenticatedAPILimit))

	// Register all handlers
	app.HealthHandler.RegisterRoutes(router)
	app.AuthHandler.RegisterRoutes(router)
	app.PointsHandler.RegisterRoutes(router)
	app.SchemeHandler.RegisterRoutes(router)
	app.AdminHandler.RegisterRoutes(router)
	app.UserHandler.RegisterRoutes(router)
}
