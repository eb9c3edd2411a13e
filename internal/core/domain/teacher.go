package domain

import "time"

// Teacher leads class sessions.
type Teacher struct {
	ID        int64
	FirstName string
	LastName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SameEntity compares teachers by ID only.
func (t *Teacher) SameEntity(other *Teacher) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.ID == other.ID
}
