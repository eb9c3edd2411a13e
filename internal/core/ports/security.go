package ports

import (
	"context"
	"time"

	"github.com/yogastudio/booking-system/internal/core/domain"
)

// TokenCodec mints and verifies signed, expiring bearer tokens.
type TokenCodec interface {
	Issue(subject string, ttl time.Duration) (string, error)
	// Verify returns the token subject or an error wrapping domain.ErrInvalidToken.
	Verify(token string) (string, error)
}

// PasswordHasher is a one-way hash with constant-time verification.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// PrincipalLoader resolves a verified token subject into a principal.
type PrincipalLoader interface {
	Load(ctx context.Context, email string) (*domain.Principal, error)
}
