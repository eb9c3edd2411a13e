package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/yogastudio/booking-system/internal/core/domain"
)

// ctxIdentity returns the caller published by the Identify middleware.
// Routes behind RequireAuth always have one; the check is a fast-fail for
// handlers mounted without it.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	id, ok := domain.IdentityFrom(c.Request().Context())
	if !ok {
		return domain.Identity{}, domain.ErrUnauthorized
	}
	return id, nil
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.NewValidationError("%s must be a number, got %q", name, raw)
	}
	return id, nil
}

// bindAndValidate decodes the request body into req and runs struct validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.NewValidationError("invalid payload")
	}
	return c.Validate(req)
}
