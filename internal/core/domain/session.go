package domain

import (
	"slices"
	"time"
)

// Session is a scheduled class. Together with its participant set it forms
// one aggregate: it is always read and written as a whole, guarded by Version.
type Session struct {
	ID           int64
	Name         string
	Description  string
	Date         time.Time
	TeacherID    *int64
	Participants []int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Version      int64
}

// HasParticipant reports whether userID is on the roster.
func (s *Session) HasParticipant(userID int64) bool {
	return slices.Contains(s.Participants, userID)
}

// AddParticipant appends userID, refusing duplicates.
func (s *Session) AddParticipant(userID int64) error {
	if s.HasParticipant(userID) {
		return ErrAlreadyParticipating
	}
	s.Participants = append(s.Participants, userID)
	return nil
}

// RemoveParticipant drops userID from the roster and reports whether it was present.
func (s *Session) RemoveParticipant(userID int64) bool {
	before := len(s.Participants)
	s.Participants = slices.DeleteFunc(s.Participants, func(id int64) bool { return id == userID })
	return len(s.Participants) != before
}

// SetParticipants replaces the roster, collapsing duplicate ids.
func (s *Session) SetParticipants(ids []int64) {
	roster := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(roster, id) {
			roster = append(roster, id)
		}
	}
	s.Participants = roster
}

// Clone returns a deep copy so stores never share roster slices with callers.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	c := *s
	c.Participants = slices.Clone(s.Participants)
	if s.TeacherID != nil {
		id := *s.TeacherID
		c.TeacherID = &id
	}
	return &c
}

// SameEntity compares sessions by ID only.
func (s *Session) SameEntity(other *Session) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.ID == other.ID
}
