package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/yogastudio/booking-system/internal/core/domain"
	"github.com/yogastudio/booking-system/internal/core/ports"
	"github.com/yogastudio/booking-system/internal/pkg/metrics"
)

const bearerPrefix = "Bearer "

// Identify resolves the bearer token of every request into a domain.Identity
// stored on the request context. It never rejects: a missing or unusable
// token leaves the request anonymous and RequireAuth decides what to do.
func Identify(codec ports.TokenCodec, loader ports.PrincipalLoader, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			header := req.Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, bearerPrefix) {
				metrics.IdentityResolutionsTotal.WithLabelValues("anonymous").Inc()
				return next(c)
			}

			subject, err := codec.Verify(header[len(bearerPrefix):])
			if err != nil {
				metrics.IdentityResolutionsTotal.WithLabelValues("invalid_token").Inc()
				log.Debug().Err(err).Str("path", c.Path()).Msg("ignoring invalid bearer token")
				return next(c)
			}

			principal, err := loadPrincipal(req.Context(), loader, subject)
			switch {
			case errors.Is(err, domain.ErrNotFound):
				metrics.IdentityResolutionsTotal.WithLabelValues("unknown_principal").Inc()
				return next(c)
			case err != nil:
				metrics.IdentityResolutionsTotal.WithLabelValues("load_failed").Inc()
				log.Error().Err(err).Str("subject", subject).Msg("principal lookup failed, continuing anonymously")
				return next(c)
			}

			metrics.IdentityResolutionsTotal.WithLabelValues("authenticated").Inc()
			ctx := domain.WithIdentity(req.Context(), domain.IdentityOf(principal))
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}

// loadPrincipal shields the request from a panicking loader.
func loadPrincipal(ctx context.Context, loader ports.PrincipalLoader, email string) (p *domain.Principal, err error) {
	defer func() {
		if r := recover(); r != nil {
			p, err = nil, fmt.Errorf("principal loader panicked: %v", r)
		}
	}()
	return loader.Load(ctx, email)
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := domain.IdentityFrom(c.Request().Context()); !ok {
				return domain.ErrUnauthorized
			}
			return next(c)
		}
	}
}
