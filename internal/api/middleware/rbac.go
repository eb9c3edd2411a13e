package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/yogastudio/booking-system/internal/core/domain"
)

// RequireRole enforces role-based access control. It expects Identify to have
// run; anonymous callers are rejected as unauthorized.
func RequireRole(role domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := domain.IdentityFrom(c.Request().Context())
			if !ok {
				return domain.ErrUnauthorized
			}
			if !id.HasRole(role) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
