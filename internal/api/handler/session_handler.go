package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yogastudio/booking-system/internal/core/ports"
)

// SessionHandler serves class sessions and their rosters.
type SessionHandler struct {
	sessions ports.SessionService
	roster   ports.RosterService
}

func NewSessionHandler(sessions ports.SessionService, roster ports.RosterService) *SessionHandler {
	return &SessionHandler{sessions: sessions, roster: roster}
}

// List handles GET /api/session.
//
// @Summary      List sessions
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/session [get]
func (h *SessionHandler) List(c echo.Context) error {
	sessions, err := h.sessions.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponses(sessions))
}

// Get handles GET /api/session/:id.
//
// @Summary      Get a session
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Session id"
// @Success      200  {object}  sessionResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/session/{id} [get]
func (h *SessionHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	s, err := h.sessions.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(s))
}

// Create handles POST /api/session.
//
// @Summary      Create a session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      sessionRequest  true  "Session"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/session [post]
func (h *SessionHandler) Create(c echo.Context) error {
	var req sessionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	s, err := h.sessions.Create(c.Request().Context(), toSessionInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(s))
}

// Update handles PUT /api/session/:id.
//
// @Summary      Update a session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Session id"
// @Param        body  body      sessionRequest  true  "Session"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/session/{id} [put]
func (h *SessionHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req sessionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	s, err := h.sessions.Update(c.Request().Context(), id, toSessionInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSessionResponse(s))
}

// Delete handles DELETE /api/session/:id.
//
// @Summary      Delete a session
// @Tags         sessions
// @Security     BearerAuth
// @Param        id   path  int  true  "Session id"
// @Success      200
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/session/{id} [delete]
func (h *SessionHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.sessions.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// Participate handles POST /api/session/:id/participate/:userId.
//
// @Summary      Join a session
// @Tags         sessions
// @Security     BearerAuth
// @Param        id      path  int  true  "Session id"
// @Param        userId  path  int  true  "User id"
// @Success      200
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/session/{id}/participate/{userId} [post]
func (h *SessionHandler) Participate(c echo.Context) error {
	sessionID, userID, err := rosterParams(c)
	if err != nil {
		return err
	}
	if err := h.roster.Join(c.Request().Context(), sessionID, userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// NoLongerParticipate handles DELETE /api/session/:id/participate/:userId.
//
// @Summary      Leave a session
// @Tags         sessions
// @Security     BearerAuth
// @Param        id      path  int  true  "Session id"
// @Param        userId  path  int  true  "User id"
// @Success      200
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/session/{id}/participate/{userId} [delete]
func (h *SessionHandler) NoLongerParticipate(c echo.Context) error {
	sessionID, userID, err := rosterParams(c)
	if err != nil {
		return err
	}
	if err := h.roster.Leave(c.Request().Context(), sessionID, userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

func rosterParams(c echo.Context) (sessionID, userID int64, err error) {
	if sessionID, err = pathID(c, "id"); err != nil {
		return 0, 0, err
	}
	if userID, err = pathID(c, "userId"); err != nil {
		return 0, 0, err
	}
	return sessionID, userID, nil
}
