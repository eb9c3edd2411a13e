package ports

import (
	"context"

	"github.com/yogastudio/booking-system/internal/core/domain"
)

type UserService interface {
	Get(ctx context.Context, id int64) (*domain.Principal, error)
	// Delete removes the account when caller owns it or is an admin.
	Delete(ctx context.Context, caller domain.Identity, id int64) error
}

type TeacherService interface {
	List(ctx context.Context) ([]*domain.Teacher, error)
	Get(ctx context.Context, id int64) (*domain.Teacher, error)
}
