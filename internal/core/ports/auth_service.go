package ports

import (
	"context"

	"github.com/yogastudio/booking-system/internal/core/domain"
)

// RegisterInput carries the sign-up form.
type RegisterInput struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token     string
	Principal *domain.Principal
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, in RegisterInput) (*domain.Principal, error)
}
