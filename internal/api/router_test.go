package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/yogastudio/booking-system/internal/core/service"
	"github.com/yogastudio/booking-system/internal/infrastructure/db/memory"
	"github.com/yogastudio/booking-system/internal/infrastructure/security"
	"github.com/yogastudio/booking-system/internal/infrastructure/seed"
)

type testServer struct {
	e        *echo.Echo
	sessions *memory.SessionRepository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	users := memory.NewUserRepository()
	teachers := memory.NewTeacherRepository()
	sessions := memory.NewSessionRepository()
	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	codec, err := security.NewJWTCodec("router-test-secret")
	require.NoError(t, err)

	log := zerolog.Nop()
	require.NoError(t, seed.Run(context.Background(), seed.Stores{Users: users, Teachers: teachers, Sessions: sessions}, hasher, log))

	e := NewRouter(Dependencies{
		Auth:       service.NewAuthService(users, hasher, codec, time.Hour, log),
		Sessions:   service.NewSessionService(sessions, teachers, users, 5, log),
		Roster:     service.NewRosterService(sessions, users, nil, 5, log),
		Users:      service.NewUserService(users, sessions, log),
		Teachers:   service.NewTeacherService(teachers),
		Tokens:     codec,
		Principals: service.NewPrincipalLoader(users),
		Registry:   prometheus.NewRegistry(),
		Logger:     log,
	})
	return &testServer{e: e, sessions: sessions}
}

func (s *testServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	rec := s.do(http.MethodPost, "/api/auth/login", "", `{"email":"`+email+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp["token"].(string)
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp["message"]
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/auth/login", "", `{"email":"yoga@studio.com","password":"test!1234"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["token"])
	assert.Equal(t, "Bearer", resp["type"])
	assert.Equal(t, "yoga@studio.com", resp["username"])
	assert.Equal(t, true, resp["admin"])
	assert.Equal(t, float64(1), resp["id"])
}

func TestLogin_Failures(t *testing.T) {
	s := newTestServer(t)

	wrong := s.do(http.MethodPost, "/api/auth/login", "", `{"email":"yoga@studio.com","password":"nope"}`)
	unknown := s.do(http.MethodPost, "/api/auth/login", "", `{"email":"ghost@studio.com","password":"test!1234"}`)
	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, message(t, wrong), message(t, unknown))

	blank := s.do(http.MethodPost, "/api/auth/login", "", `{"email":"yoga@studio.com"}`)
	assert.Equal(t, http.StatusBadRequest, blank.Code)
}

func TestRegister(t *testing.T) {
	s := newTestServer(t)
	body := `{"email":"new@studio.com","firstName":"New","lastName":"Member","password":"secret1"}`

	rec := s.do(http.MethodPost, "/api/auth/register", "", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User registered successfully!", message(t, rec))

	s.login(t, "new@studio.com", "secret1")

	dup := s.do(http.MethodPost, "/api/auth/register", "", body)
	assert.Equal(t, http.StatusBadRequest, dup.Code)
	assert.Equal(t, "Error: Email is already taken!", message(t, dup))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/session", "/api/session/1", "/api/teacher", "/api/user/1"} {
		rec := s.do(http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}

	rec := s.do(http.MethodGet, "/api/session", "not-a-jwt", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// scheme is case-sensitive
	token := s.login(t, "yoga@studio.com", "test!1234")
	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req.Header.Set(echo.HeaderAuthorization, "bearer "+token)
	lower := httptest.NewRecorder()
	s.e.ServeHTTP(lower, req)
	assert.Equal(t, http.StatusUnauthorized, lower.Code)

	// public routes stay open
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health", "", "").Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/metrics", "", "").Code)
}

func TestSessionReads(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "user@studio.com", "test!1234")

	rec := s.do(http.MethodGet, "/api/session", token, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 2)

	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/session/abc", token, "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/session/99", token, "").Code)
	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/teacher/1", token, "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/teacher/9", token, "").Code)
}

func TestRosterScenarios(t *testing.T) {
	s := newTestServer(t)
	token := s.login(t, "yoga@studio.com", "test!1234")

	join := s.do(http.MethodPost, "/api/session/1/participate/1", token, "")
	require.Equal(t, http.StatusOK, join.Code)

	again := s.do(http.MethodPost, "/api/session/1/participate/1", token, "")
	assert.Equal(t, http.StatusBadRequest, again.Code)

	leave := s.do(http.MethodDelete, "/api/session/2/participate/1", token, "")
	assert.Equal(t, http.StatusOK, leave.Code)
	sess, err := s.sessions.FindByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, sess.Participants)

	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, "/api/session/99/participate/1", token, "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, "/api/session/1/participate/99", token, "").Code)
	assert.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/api/session/1/participate/me", token, "").Code)
}

func TestSessionWritesNeedAdmin(t *testing.T) {
	s := newTestServer(t)
	body := `{"name":"Yin","date":"2026-05-01T09:00:00Z","teacher_id":1,"description":"Slow practice"}`

	user := s.login(t, "user@studio.com", "test!1234")
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/api/session", user, body).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodDelete, "/api/session/1", user, "").Code)

	admin := s.login(t, "yoga@studio.com", "test!1234")
	rec := s.do(http.MethodPost, "/api/session", admin, body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Yin", created["name"])

	unknownTeacher := `{"name":"Yin","date":"2026-05-01T09:00:00Z","teacher_id":42,"description":"x"}`
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, "/api/session", admin, unknownTeacher).Code)

	assert.Equal(t, http.StatusOK, s.do(http.MethodDelete, "/api/session/3", admin, "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/api/session/3", admin, "").Code)
}

func TestUserDelete(t *testing.T) {
	s := newTestServer(t)
	user := s.login(t, "user@studio.com", "test!1234")

	// deleting someone else's account is refused with 401
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodDelete, "/api/user/1", user, "").Code)

	rec := s.do(http.MethodDelete, "/api/user/2", user, "")
	require.Equal(t, http.StatusOK, rec.Code)

	sess, err := s.sessions.FindByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, sess.Participants)

	// the token now refers to a missing principal
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/session", user, "").Code)
}
