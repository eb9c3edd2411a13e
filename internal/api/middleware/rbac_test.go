package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/yogastudio/booking-system/internal/core/domain"
)

func contextWithRole(role domain.Role) echo.Context {
	ctx := domain.WithIdentity(context.Background(), domain.Identity{UserID: 1, Email: "a@b.c", Role: role})
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestRequireRole_Allows(t *testing.T) {
	c := contextWithRole(domain.RoleAdmin)

	called := false
	handler := RequireRole(domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestRequireRole_AdminHoldsUserRole(t *testing.T) {
	c := contextWithRole(domain.RoleAdmin)
	handler := RequireRole(domain.RoleUser)(func(c echo.Context) error { return nil })
	if err := handler(c); err != nil {
		t.Fatalf("admin should pass a user check: %v", err)
	}
}

func TestRequireRole_Forbids(t *testing.T) {
	c := contextWithRole(domain.RoleUser)

	handler := RequireRole(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireRole_Anonymous(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := echo.New().NewContext(req, httptest.NewRecorder())

	handler := RequireRole(domain.RoleUser)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
