package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yogastudio/booking-system/internal/core/domain"
	"github.com/yogastudio/booking-system/internal/core/ports"
)

type UserService struct {
	users    ports.UserRepository
	sessions ports.SessionRepository
	logger   zerolog.Logger
}

func NewUserService(users ports.UserRepository, sessions ports.SessionRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, sessions: sessions, logger: logger}
}

func (s *UserService) Get(ctx context.Context, id int64) (*domain.Principal, error) {
	return s.users.FindByID(ctx, id)
}

// Delete removes an account and its roster entries. Only the account owner
// or an admin may do so.
func (s *UserService) Delete(ctx context.Context, caller domain.Identity, id int64) error {
	p, err := s.users.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	if !caller.IsAdmin() && caller.Email != p.Email {
		return fmt.Errorf("delete user %d: %w", id, domain.ErrForbidden)
	}

	// Account before sweep: a racing join either lands before the sweep or
	// finds the user gone on its re-check.
	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	if err := s.sessions.RemoveParticipantEverywhere(ctx, id); err != nil {
		return fmt.Errorf("delete user %d: detach from sessions: %w", id, err)
	}

	s.logger.Info().Int64("user_id", id).Str("by", caller.Email).Msg("user deleted")
	return nil
}

type TeacherService struct {
	teachers ports.TeacherRepository
}

func NewTeacherService(teachers ports.TeacherRepository) *TeacherService {
	return &TeacherService{teachers: teachers}
}

func (s *TeacherService) List(ctx context.Context) ([]*domain.Teacher, error) {
	return s.teachers.FindAll(ctx)
}

func (s *TeacherService) Get(ctx context.Context, id int64) (*domain.Teacher, error) {
	return s.teachers.FindByID(ctx, id)
}
