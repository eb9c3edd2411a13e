// Package memory provides mutex-guarded stores that honour the same contracts
// as the MongoDB repositories: unique emails, integer ids and versioned
// session writes. Every value crossing the boundary is copied.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/yogastudio/booking-system/internal/core/domain"
)

// UserRepository is an in-memory ports.UserRepository.
type UserRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*domain.Principal
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byID: make(map[int64]*domain.Principal)}
}

func cloneUser(p *domain.Principal) *domain.Principal {
	c := *p
	return &c
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.Principal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.byID {
		if p.Email == email {
			return cloneUser(p), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) FindByID(_ context.Context, id int64) (*domain.Principal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(p), nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

func (r *UserRepository) Create(_ context.Context, p *domain.Principal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Email == p.Email {
			return domain.ErrEmailTaken
		}
	}
	r.nextID++
	p.ID = r.nextID
	r.byID[p.ID] = cloneUser(p)
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

// TeacherRepository is an in-memory ports.TeacherRepository.
type TeacherRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*domain.Teacher
}

func NewTeacherRepository() *TeacherRepository {
	return &TeacherRepository{byID: make(map[int64]*domain.Teacher)}
}

func (r *TeacherRepository) FindAll(_ context.Context) ([]*domain.Teacher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Teacher, 0, len(r.byID))
	for _, t := range r.byID {
		c := *t
		out = append(out, &c)
	}
	slices.SortFunc(out, func(a, b *domain.Teacher) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (r *TeacherRepository) FindByID(_ context.Context, id int64) (*domain.Teacher, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrTeacherNotFound
	}
	c := *t
	return &c, nil
}

func (r *TeacherRepository) Create(_ context.Context, t *domain.Teacher) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	t.ID = r.nextID
	c := *t
	r.byID[t.ID] = &c
	return nil
}

// SessionRepository is an in-memory ports.SessionRepository with
// compare-and-swap updates on Session.Version.
type SessionRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*domain.Session
}

func NewSessionRepository() *SessionRepository {
	return &SessionRepository{byID: make(map[int64]*domain.Session)}
}

func (r *SessionRepository) FindAll(_ context.Context) ([]*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Session, 0, len(r.byID))
	for _, s := range r.byID {
		out = append(out, s.Clone())
	}
	slices.SortFunc(out, func(a, b *domain.Session) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (r *SessionRepository) FindByID(_ context.Context, id int64) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return s.Clone(), nil
}

func (r *SessionRepository) Create(_ context.Context, s *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	s.ID = r.nextID
	s.Version = 1
	r.byID[s.ID] = s.Clone()
	return nil
}

func (r *SessionRepository) Update(_ context.Context, s *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[s.ID]
	if !ok {
		return domain.ErrSessionNotFound
	}
	if stored.Version != s.Version {
		return domain.ErrConcurrentUpdate
	}
	s.Version++
	r.byID[s.ID] = s.Clone()
	return nil
}

func (r *SessionRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *SessionRepository) RemoveParticipantEverywhere(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.byID {
		if s.RemoveParticipant(userID) {
			s.Version++
		}
	}
	return nil
}
