package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/yogastudio/booking-system/internal/core/domain"
	"github.com/yogastudio/booking-system/internal/core/ports"
)

// SessionService implements session CRUD. Roster changes go through RosterService.
type SessionService struct {
	sessions    ports.SessionRepository
	teachers    ports.TeacherRepository
	users       ports.UserRepository
	maxAttempts int
	logger      zerolog.Logger
	now         func() time.Time
}

func NewSessionService(sessions ports.SessionRepository, teachers ports.TeacherRepository, users ports.UserRepository, maxAttempts int, logger zerolog.Logger) *SessionService {
	return &SessionService{
		sessions:    sessions,
		teachers:    teachers,
		users:       users,
		maxAttempts: maxAttempts,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *SessionService) List(ctx context.Context) ([]*domain.Session, error) {
	return s.sessions.FindAll(ctx)
}

func (s *SessionService) Get(ctx context.Context, id int64) (*domain.Session, error) {
	return s.sessions.FindByID(ctx, id)
}

func (s *SessionService) Create(ctx context.Context, in ports.SessionInput) (*domain.Session, error) {
	if err := s.checkReferences(ctx, in); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	now := s.now()
	sess := &domain.Session{CreatedAt: now}
	apply(sess, in, now)

	if err := s.sessions.Create(ctx, sess); err != nil {
		s.logger.Error().Err(err).Msg("failed to create session")
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.logger.Info().Int64("session_id", sess.ID).Msg("session created")
	return sess, nil
}

// Update replaces the writable fields, roster included, of an existing session.
func (s *SessionService) Update(ctx context.Context, id int64, in ports.SessionInput) (*domain.Session, error) {
	if err := s.checkReferences(ctx, in); err != nil {
		return nil, fmt.Errorf("update session %d: %w", id, err)
	}

	var updated *domain.Session
	err := retryOnConflict(ctx, "update", s.maxAttempts, func() error {
		sess, err := s.sessions.FindByID(ctx, id)
		if err != nil {
			return err
		}
		apply(sess, in, s.now())
		if err := s.sessions.Update(ctx, sess); err != nil {
			return err
		}
		updated = sess
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update session %d: %w", id, err)
	}
	return updated, nil
}

func (s *SessionService) Delete(ctx context.Context, id int64) error {
	if _, err := s.sessions.FindByID(ctx, id); err != nil {
		return fmt.Errorf("delete session %d: %w", id, err)
	}
	if err := s.sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete session %d: %w", id, err)
	}
	s.logger.Info().Int64("session_id", id).Msg("session deleted")
	return nil
}

// checkReferences verifies that the teacher and every listed user exist.
func (s *SessionService) checkReferences(ctx context.Context, in ports.SessionInput) error {
	if _, err := s.teachers.FindByID(ctx, in.TeacherID); err != nil {
		return err
	}
	for _, userID := range in.Users {
		if _, err := s.users.FindByID(ctx, userID); err != nil {
			return err
		}
	}
	return nil
}

func apply(sess *domain.Session, in ports.SessionInput, now time.Time) {
	teacherID := in.TeacherID
	sess.Name = in.Name
	sess.Description = in.Description
	sess.Date = in.Date
	sess.TeacherID = &teacherID
	sess.SetParticipants(in.Users)
	sess.UpdatedAt = now
}
