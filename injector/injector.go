//go:build wireinject
// +build wireinject

package injector

import (
	"github.com/google/wire"
	"github.com/perkloop/perkloop-core/internal/app/deliveries"
	"github.com/perkloop/perkloop-core/internal/app/middlewares"
	"github.com/perkloop/perkloop-core/internal/app/services"
	"github.com/perkloop/perkloop-core/internal/infrastructures"
)

// Infrastructure providers
var infrastructureSet = wire.NewSet(
	infrastructures.NewDatabase,
	infrastructures.NewRedisClient,
	infrastructures.NewValidator,
	infrastructures.NewMailClient,
	wire.Bind(new(services.Mailer), new(*infrastructures.MailClient)),
	wire.Value("perkloop"),
	wire.Bind(new(middlewares.RateLimiter), new(*middlewares.RedisRateLimiter)),
	middlewares.NewRedisRateLimiter,
)

// Service providers
var serviceSet = wire.NewSet(
	services.NewBalanceService,
	services.NewPointsService,
	services.NewSchemeService,
	services.NewRedemptionService,
	services.NewOTPService,
	services.NewAuthService,
	services.NewUserService,
)

// Middleware providers
var middlewareSet = wire.NewSet(
	middlewares.NewAuthMiddleware,
	middlewares.NewRateLimitMiddleware,
)

// Handler providers
var handlerSet = wire.NewSet(
	deliveries.NewHealthHandler,
	deliveries.NewAuthHandler,
	deliveries.NewPointsHandler,
	deliveries.NewSchemeHandler,
	deliveries.NewAdminHandler,
	deliveries.NewUserHandler,
	wire.Struct(new(Application), "*"),
)

// InitializeApplication initializes the application with all its dependencies
func InitializeApplication() (*Application, error) {
	wire.Build(
		infrastructureSet,
		serviceSet,
		middlewareSet,
		handlerSet,
	)
	return &Application{}, nil
}
