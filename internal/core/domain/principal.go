package domain

import "time"

// Role is the closed set of authorities a principal can hold.
type Role int

const (
	RoleUser Role = iota
	RoleAdmin
)

func (r Role) String() string {
	if r == RoleAdmin {
		return "admin"
	}
	return "user"
}

// Principal is a user account as held by the credential store.
// An ID of zero means the principal has not been persisted yet.
type Principal struct {
	ID           int64
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Admin        bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Role derives the principal's authority from its admin flag.
func (p *Principal) Role() Role {
	if p.Admin {
		return RoleAdmin
	}
	return RoleUser
}

// SameEntity reports identity equality. Only IDs are compared, so two
// unsaved principals are considered the same entity.
func (p *Principal) SameEntity(other *Principal) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.ID == other.ID
}
