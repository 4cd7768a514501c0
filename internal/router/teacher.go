package router

import (
	"net/http"

	"github.com/deppfellow/schoolapp/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerTeacherRoutes is the routing table of the teachers resource.
// Every route answers 200 on success, create included.
func registerTeacherRoutes(r *echo.Echo, h *handler.Handlers) {
	t := h.Teacher
	byID := "/:" + handler.TeacherIDParam

	teachers := r.Group("/teachers")

	teachers.GET("", handler.Handle(t.Handler, t.GetTeachers, http.StatusOK, handler.NewListTeachersRequest))
	teachers.POST("", handler.Handle(t.Handler, t.CreateTeacher, http.StatusOK, handler.NewTeacherInsertRequest))
	teachers.GET(byID, handler.Handle(t.Handler, t.GetTeacher, http.StatusOK, handler.NewTeacherIDRequest))
	teachers.PUT(byID, handler.Handle(t.Handler, t.UpdateTeacher, http.StatusOK, handler.NewUpdateTeacherRequest))
	teachers.DELETE(byID, handler.Handle(t.Handler, t.DeleteTeacher, http.StatusOK, handler.NewTeacherIDRequest))
}
