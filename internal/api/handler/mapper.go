package handler

import (
	"github.com/yogastudio/booking-system/internal/core/domain"
	"github.com/yogastudio/booking-system/internal/core/ports"
)

// --- Request → Service input ---

func toRegisterInput(req registerRequest) ports.RegisterInput {
	return ports.RegisterInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	}
}

func toSessionInput(req sessionRequest) ports.SessionInput {
	return ports.SessionInput{
		Name:        req.Name,
		Description: req.Description,
		Date:        req.Date,
		TeacherID:   req.TeacherID,
		Users:       req.Users,
	}
}

// --- Domain → HTTP response ---

func toJWTResponse(r *ports.LoginResult) jwtResponse {
	return jwtResponse{
		Token:     r.Token,
		Type:      "Bearer",
		ID:        r.Principal.ID,
		Username:  r.Principal.Email,
		FirstName: r.Principal.FirstName,
		LastName:  r.Principal.LastName,
		Admin:     r.Principal.Admin,
	}
}

func toSessionResponse(s *domain.Session) sessionResponse {
	users := make([]int64, len(s.Participants))
	copy(users, s.Participants)
	return sessionResponse{
		ID:          s.ID,
		Name:        s.Name,
		Date:        s.Date.UTC(),
		TeacherID:   s.TeacherID,
		Description: s.Description,
		Users:       users,
		CreatedAt:   s.CreatedAt.UTC(),
		UpdatedAt:   s.UpdatedAt.UTC(),
	}
}

func toSessionResponses(ss []*domain.Session) []sessionResponse {
	out := make([]sessionResponse, 0, len(ss))
	for _, s := range ss {
		out = append(out, toSessionResponse(s))
	}
	return out
}

func toTeacherResponse(t *domain.Teacher) teacherResponse {
	return teacherResponse{
		ID:        t.ID,
		FirstName: t.FirstName,
		LastName:  t.LastName,
		CreatedAt: t.CreatedAt.UTC(),
		UpdatedAt: t.UpdatedAt.UTC(),
	}
}

func toUserResponse(p *domain.Principal) userResponse {
	return userResponse{
		ID:        p.ID,
		Email:     p.Email,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Admin:     p.Admin,
		CreatedAt: p.CreatedAt.UTC(),
		UpdatedAt: p.UpdatedAt.UTC(),
	}
}
