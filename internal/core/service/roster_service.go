package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/yogastudio/booking-system/internal/core/domain"
	"github.com/yogastudio/booking-system/internal/core/ports"
	"github.com/yogastudio/booking-system/internal/pkg/metrics"
)

// RosterService adds and removes session participants.
//
// Each mutation reads the whole session, edits the participant set in memory
// and writes the aggregate back under a version check; a lost race re-runs the
// whole operation. When a RosterLocker is configured the mutation also holds a
// per-session lock so concurrent writers queue instead of retrying.
type RosterService struct {
	sessions    ports.SessionRepository
	users       ports.UserRepository
	locker      ports.RosterLocker
	maxAttempts int
	logger      zerolog.Logger
	now         func() time.Time
}

// NewRosterService builds the roster manager. locker may be nil.
func NewRosterService(sessions ports.SessionRepository, users ports.UserRepository, locker ports.RosterLocker, maxAttempts int, logger zerolog.Logger) *RosterService {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &RosterService{
		sessions:    sessions,
		users:       users,
		locker:      locker,
		maxAttempts: maxAttempts,
		logger:      logger,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Join adds userID to the session roster. Checks run in order: session
// exists, user exists, user not already participating.
func (s *RosterService) Join(ctx context.Context, sessionID, userID int64) error {
	userChecked := false
	err := s.mutate(ctx, "join", sessionID, func(sess *domain.Session) (bool, error) {
		if !userChecked {
			if _, err := s.users.FindByID(ctx, userID); err != nil {
				return false, err
			}
			userChecked = true
		}
		if err := sess.AddParticipant(userID); err != nil {
			return false, err
		}
		return true, nil
	})
	if err == nil {
		err = s.dropIfUserGone(ctx, sessionID, userID)
	}
	s.observe("join", err, true)
	if err != nil {
		return fmt.Errorf("join session %d: %w", sessionID, err)
	}
	s.logger.Info().Int64("session_id", sessionID).Int64("user_id", userID).Msg("user joined session")
	return nil
}

// Leave removes userID from the roster. Removing a user who is not on the
// roster succeeds without writing anything.
func (s *RosterService) Leave(ctx context.Context, sessionID, userID int64) error {
	removed := false
	err := s.mutate(ctx, "leave", sessionID, func(sess *domain.Session) (bool, error) {
		removed = sess.RemoveParticipant(userID)
		return removed, nil
	})
	s.observe("leave", err, removed)
	if err != nil {
		return fmt.Errorf("leave session %d: %w", sessionID, err)
	}
	if removed {
		s.logger.Info().Int64("session_id", sessionID).Int64("user_id", userID).Msg("user left session")
	}
	return nil
}

// dropIfUserGone re-reads the user after a join has been written. An account
// deleted in between has already had its roster sweep, so the entry is
// removed here and the join reports the user as missing.
func (s *RosterService) dropIfUserGone(ctx context.Context, sessionID, userID int64) error {
	_, err := s.users.FindByID(ctx, userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		s.logger.Warn().Err(err).Int64("user_id", userID).Msg("could not re-check user after join")
		return nil
	}
	if rmErr := s.mutate(ctx, "join", sessionID, func(sess *domain.Session) (bool, error) {
		return sess.RemoveParticipant(userID), nil
	}); rmErr != nil && !errors.Is(rmErr, domain.ErrSessionNotFound) {
		return rmErr
	}
	s.logger.Warn().Int64("session_id", sessionID).Int64("user_id", userID).Msg("user deleted during join, roster entry dropped")
	return err
}

// mutate runs edit against a freshly loaded session and persists the result
// when edit reports a change.
func (s *RosterService) mutate(ctx context.Context, op string, sessionID int64, edit func(*domain.Session) (bool, error)) error {
	unlock := s.lock(ctx, sessionID)
	defer unlock()

	return retryOnConflict(ctx, op, s.maxAttempts, func() error {
		sess, err := s.sessions.FindByID(ctx, sessionID)
		if err != nil {
			return err
		}
		changed, err := edit(sess)
		if err != nil || !changed {
			return err
		}
		sess.UpdatedAt = s.now()
		return s.sessions.Update(ctx, sess)
	})
}

func (s *RosterService) lock(ctx context.Context, sessionID int64) func() {
	if s.locker == nil {
		return func() {}
	}
	start := time.Now()
	unlock, err := s.locker.Lock(ctx, sessionID)
	metrics.RosterLockWaitSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		s.logger.Warn().Err(err).Int64("session_id", sessionID).Msg("roster lock unavailable, relying on version check")
		return func() {}
	}
	return unlock
}

func (s *RosterService) observe(op string, err error, changed bool) {
	result := "ok"
	switch {
	case errors.Is(err, domain.ErrNotFound):
		result = "not_found"
	case errors.Is(err, domain.ErrConflict):
		result = "conflict"
	case err != nil:
		result = "error"
	case !changed:
		result = "noop"
	}
	metrics.RosterOperationsTotal.WithLabelValues(op, result).Inc()
}
