package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/yogastudio/booking-system/internal/core/ports"
)

type TeacherHandler struct {
	teachers ports.TeacherService
}

func NewTeacherHandler(teachers ports.TeacherService) *TeacherHandler {
	return &TeacherHandler{teachers: teachers}
}

// List handles GET /api/teacher.
//
// @Summary      List teachers
// @Tags         teachers
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   teacherResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/teacher [get]
func (h *TeacherHandler) List(c echo.Context) error {
	teachers, err := h.teachers.List(c.Request().Context())
	if err != nil {
		return err
	}
	out := make([]teacherResponse, 0, len(teachers))
	for _, t := range teachers {
		out = append(out, toTeacherResponse(t))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /api/teacher/:id.
//
// @Summary      Get a teacher
// @Tags         teachers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Teacher id"
// @Success      200  {object}  teacherResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/teacher/{id} [get]
func (h *TeacherHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	t, err := h.teachers.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTeacherResponse(t))
}
