package middleware

import (
	"github.com/labstack/echo/v4"

	"brokerdex/internal/domain/entity"
	apperrors "brokerdex/pkg/errors"
	"brokerdex/pkg/response"
)

type AdminMiddleware struct{}

func NewAdminMiddleware() *AdminMiddleware {
	return &AdminMiddleware{}
}

// AdminOnly requires the token's role claim to be Admin. Runs after
// Authenticate, which put the role on the context.
func (m *AdminMiddleware) AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		role, ok := c.Get("role").(string)
		if !ok {
			return response.Error(c, apperrors.Unauthorized("Authentication required", nil))
		}

		if role != string(entity.RoleAdmin) {
			return response.Error(c, apperrors.Forbidden("Admin privileges required", nil))
		}

		return next(c)
	}
}
