package ports

import (
	"context"
	"time"

	"github.com/yogastudio/booking-system/internal/core/domain"
)

// SessionInput carries the writable fields of a session.
type SessionInput struct {
	Name        string
	Description string
	Date        time.Time
	TeacherID   int64
	Users       []int64
}

type SessionService interface {
	List(ctx context.Context) ([]*domain.Session, error)
	Get(ctx context.Context, id int64) (*domain.Session, error)
	Create(ctx context.Context, in SessionInput) (*domain.Session, error)
	Update(ctx context.Context, id int64, in SessionInput) (*domain.Session, error)
	Delete(ctx context.Context, id int64) error
}

// RosterService manages session membership.
type RosterService interface {
	Join(ctx context.Context, sessionID, userID int64) error
	Leave(ctx context.Context, sessionID, userID int64) error
}
