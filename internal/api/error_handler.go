package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/yogastudio/booking-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain error kinds to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"message": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

// notFoundMessages is checked in order; the first match names the missing entity.
var notFoundMessages = []struct {
	err error
	msg string
}{
	{domain.ErrSessionNotFound, "session not found"},
	{domain.ErrUserNotFound, "user not found"},
	{domain.ErrTeacherNotFound, "teacher not found"},
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Reason
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "invalid request"

	case errors.Is(err, domain.ErrNotFound):
		for _, nf := range notFoundMessages {
			if errors.Is(err, nf.err) {
				return http.StatusNotFound, nf.msg
			}
		}
		return http.StatusNotFound, "not found"

	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "bad credentials"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "full authentication is required to access this resource"
	case errors.Is(err, domain.ErrForbidden):
		// Forbidden is reported as 401 across the API.
		return http.StatusUnauthorized, "access forbidden"

	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusBadRequest, "Error: Email is already taken!"
	case errors.Is(err, domain.ErrAlreadyParticipating):
		return http.StatusBadRequest, "user already participates in this session"
	case errors.Is(err, domain.ErrConflict):
		return http.StatusBadRequest, "conflict"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
