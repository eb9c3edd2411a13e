package ports

import (
	"context"

	"github.com/yogastudio/booking-system/internal/core/domain"
)

type TeacherRepository interface {
	FindAll(ctx context.Context) ([]*domain.Teacher, error)
	FindByID(ctx context.Context, id int64) (*domain.Teacher, error)
	Create(ctx context.Context, t *domain.Teacher) error
}
