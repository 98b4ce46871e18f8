package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"brokerdex/internal/infrastructure/auth"
	apperrors "brokerdex/pkg/errors"
	"brokerdex/pkg/response"
)

type AuthMiddleware struct {
	tokens *auth.JWTManager
}

func NewAuthMiddleware(tokens *auth.JWTManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Authenticate verifies the bearer token and stores the subject and role on
// the request context. Failures render as envelope responses, same as every
// other error surface.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Error(c, apperrors.Unauthorized("Authorization header is required", nil))
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return response.Error(c, apperrors.Unauthorized("Invalid authorization format", nil))
		}

		claims, err := m.tokens.Verify(parts[1])
		if err != nil {
			return response.Error(c, apperrors.Unauthorized("Invalid or expired token", err))
		}

		c.Set("uid", claims.Subject)
		c.Set("role", claims.Role)

		return next(c)
	}
}
