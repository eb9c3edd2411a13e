package domain

import "context"

// Identity is the authenticated caller of a single request. It is only ever
// built from a fully loaded principal.
type Identity struct {
	UserID int64
	Email  string
	Role   Role
}

// HasRole reports whether the identity carries role. Admins hold RoleUser too.
func (i Identity) HasRole(role Role) bool {
	return role == RoleUser || i.Role == role
}

// IsAdmin is shorthand for HasRole(RoleAdmin).
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// IdentityOf builds the request identity for p.
func IdentityOf(p *Principal) Identity {
	return Identity{UserID: p.ID, Email: p.Email, Role: p.Role()}
}

type identityKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the identity attached by WithIdentity, if any.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
