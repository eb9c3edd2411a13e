package ports

import (
	"context"

	"github.com/yogastudio/booking-system/internal/core/domain"
)

// UserRepository is the credential store.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Principal, error)
	FindByID(ctx context.Context, id int64) (*domain.Principal, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Create assigns the ID and returns domain.ErrEmailTaken when the email is
	// already stored.
	Create(ctx context.Context, p *domain.Principal) error
	Delete(ctx context.Context, id int64) error
}
