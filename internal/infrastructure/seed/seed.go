// Package seed loads the demo dataset used by local runs and end-to-end tests.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/yogastudio/booking-system/internal/core/domain"
	"github.com/yogastudio/booking-system/internal/core/ports"
)

const (
	AdminEmail    = "yoga@studio.com"
	AdminPassword = "test!1234"
	UserEmail     = "user@studio.com"
	UserPassword  = "test!1234"
)

type Stores struct {
	Users    ports.UserRepository
	Teachers ports.TeacherRepository
	Sessions ports.SessionRepository
}

// Run inserts the demo dataset unless the admin account already exists, so it
// is safe to call on every start.
func Run(ctx context.Context, s Stores, hasher ports.PasswordHasher, log zerolog.Logger) error {
	exists, err := s.Users.ExistsByEmail(ctx, AdminEmail)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if exists {
		log.Debug().Msg("seed data already present")
		return nil
	}

	now := time.Now().UTC()

	admin, err := createUser(ctx, s.Users, hasher, AdminEmail, AdminPassword, "Admin", "Admin", true, now)
	if err != nil {
		return err
	}
	member, err := createUser(ctx, s.Users, hasher, UserEmail, UserPassword, "Jane", "Doe", false, now)
	if err != nil {
		return err
	}

	margot := &domain.Teacher{FirstName: "Margot", LastName: "DELAHAYE", CreatedAt: now, UpdatedAt: now}
	helene := &domain.Teacher{FirstName: "Helene", LastName: "THIERCELIN", CreatedAt: now, UpdatedAt: now}
	for _, t := range []*domain.Teacher{margot, helene} {
		if err := s.Teachers.Create(ctx, t); err != nil {
			return fmt.Errorf("seed teacher: %w", err)
		}
	}

	day := now.Truncate(24 * time.Hour)
	margotID, heleneID := margot.ID, helene.ID
	sessions := []*domain.Session{
		{
			Name:        "Yoga",
			Description: "Yoga session",
			Date:        day.Add(7 * 24 * time.Hour),
			TeacherID:   &margotID,
		},
		{
			Name:         "Pilate",
			Description:  "Pilate session",
			Date:         day.Add(14 * 24 * time.Hour),
			TeacherID:    &heleneID,
			Participants: []int64{member.ID},
		},
	}
	for _, sess := range sessions {
		sess.CreatedAt, sess.UpdatedAt = now, now
		if err := s.Sessions.Create(ctx, sess); err != nil {
			return fmt.Errorf("seed session: %w", err)
		}
	}

	log.Info().
		Int64("admin_id", admin.ID).
		Int64("user_id", member.ID).
		Int("sessions", len(sessions)).
		Msg("seed data loaded")
	return nil
}

func createUser(ctx context.Context, users ports.UserRepository, hasher ports.PasswordHasher, email, password, first, last string, admin bool, now time.Time) (*domain.Principal, error) {
	hash, err := hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("seed %s: %w", email, err)
	}
	p := &domain.Principal{
		Email:        email,
		FirstName:    first,
		LastName:     last,
		PasswordHash: hash,
		Admin:        admin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := users.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("seed %s: %w", email, err)
	}
	return p, nil
}
