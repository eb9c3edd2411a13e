package ports

import (
	"context"

	"github.com/yogastudio/booking-system/internal/core/domain"
)

// SessionRepository persists session aggregates.
type SessionRepository interface {
	FindAll(ctx context.Context) ([]*domain.Session, error)
	FindByID(ctx context.Context, id int64) (*domain.Session, error)
	// Create assigns ID and sets Version to 1.
	Create(ctx context.Context, s *domain.Session) error
	// Update writes the whole aggregate if the stored version still equals
	// s.Version, then bumps s.Version. A stale version yields
	// domain.ErrConcurrentUpdate; a missing document domain.ErrSessionNotFound.
	Update(ctx context.Context, s *domain.Session) error
	Delete(ctx context.Context, id int64) error
	// RemoveParticipantEverywhere drops userID from every roster.
	RemoveParticipantEverywhere(ctx context.Context, userID int64) error
}

// RosterLocker serialises roster mutations per session across processes.
type RosterLocker interface {
	Lock(ctx context.Context, sessionID int64) (unlock func(), err error)
}
