package service

import (
	"context"
	"fmt"

	"github.com/yogastudio/booking-system/internal/core/domain"
	"github.com/yogastudio/booking-system/internal/core/ports"
)

// PrincipalLoader resolves token subjects against the credential store on
// every call, so deleted accounts stop authenticating immediately.
type PrincipalLoader struct {
	users ports.UserRepository
}

func NewPrincipalLoader(users ports.UserRepository) *PrincipalLoader {
	return &PrincipalLoader{users: users}
}

func (l *PrincipalLoader) Load(ctx context.Context, email string) (*domain.Principal, error) {
	p, err := l.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("load principal: %w", err)
	}
	return p, nil
}
