package middlewares

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/perkloop/perkloop-core/internal/app/errors"
	"github.com/perkloop/perkloop-core/internal/app/models"
	"github.com/perkloop/perkloop-core/internal/app/pkg"
	"github.com/perkloop/perkloop-core/internal/infrastructures"
)

type AuthMiddleware struct{}

func NewAuthMiddleware() *AuthMiddleware {
	return &AuthMiddleware{}
}

// AuthUser verifies the bearer token and stores the caller's email and role
// in the request locals.
func (m *AuthMiddleware) AuthUser(c *fiber.Ctx) error {
	token := c.Get("Authorization")
	if token == "" {
		return pkg.ErrorResponse(c, errors.NewUnauthorizedError())
	}

	token = strings.Replace(token, "Bearer ", "", 1)

	claims, err := m.parseToken(token)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	email, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if email == "" {
		return pkg.ErrorResponse(c, errors.NewUnauthorizedError("Invalid token claims"))
	}

	c.Locals("email", email)
	c.Locals("role", models.UserRole(role))

	return c.Next()
}

// AuthAdmin requires AuthUser to have run first.
func (m *AuthMiddleware) AuthAdmin(c *fiber.Ctx) error {
	role, ok := c.Locals("role").(models.UserRole)
	if !ok || role != models.UserRoleAdmin {
		return pkg.ErrorResponse(c, errors.NewForbiddenError("Admin access required"))
	}

	return c.Next()
}

func (m *AuthMiddleware) parseToken(tokenStr string) (jwt.MapClaims, error) {
	config := infrastructures.Config
	if config == nil || config.JWT_SECRET_KEY == "" {
		return nil, errors.NewUnauthorizedError("Token verification unavailable")
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.NewUnauthorizedError("Unexpected signing method")
		}
		return []byte(config.JWT_SECRET_KEY), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, errors.NewUnauthorizedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.NewUnauthorizedError("Invalid token claims")
	}

	return claims, nil
}
