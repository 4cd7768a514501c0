package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/schoolapp/internal/errs"
	"github.com/deppfellow/schoolapp/internal/model/teacher"
	"github.com/deppfellow/schoolapp/internal/server"
	"github.com/deppfellow/schoolapp/internal/service"
	"github.com/labstack/echo/v4"
)

// TeacherService is what TeacherHandler needs from the business layer.
// Missing ids are reported with service.ErrTeacherNotFound.
type TeacherService interface {
	GetTeachersByLastname(ctx context.Context, lastname string) ([]teacher.Teacher, error)
	GetTeacherByID(ctx context.Context, id int64) (*teacher.Teacher, error)
	InsertTeacher(ctx context.Context, dto teacher.TeacherInsertDTO) (*teacher.Teacher, error)
	UpdateTeacher(ctx context.Context, dto teacher.TeacherUpdateDTO) (*teacher.Teacher, error)
	DeleteTeacher(ctx context.Context, id int64) error
}

type TeacherHandler struct {
	Handler
	service TeacherService
}

func NewTeacherHandler(s *server.Server, svc TeacherService) *TeacherHandler {
	return &TeacherHandler{
		Handler: NewHandler(s),
		service: svc,
	}
}

func (h *TeacherHandler) GetTeachers(c echo.Context, req *ListTeachersRequest) ([]teacher.TeacherReadOnlyDTO, error) {
	teachers, err := h.service.GetTeachersByLastname(c.Request().Context(), req.Lastname)
	if err != nil {
		if errors.Is(err, service.ErrTeacherNotFound) {
			return nil, errs.NewResourceNotFoundError(errs.MessageNotFound, err)
		}
		return nil, err
	}

	return teacher.ToReadOnlyDTOs(teachers), nil
}

func (h *TeacherHandler) GetTeacher(c echo.Context, req *TeacherIDRequest) (teacher.TeacherReadOnlyDTO, error) {
	t, err := h.service.GetTeacherByID(c.Request().Context(), req.TeacherID)
	if err != nil {
		if errors.Is(err, service.ErrTeacherNotFound) {
			return teacher.TeacherReadOnlyDTO{}, errs.NewResourceNotFoundError(errs.MessageNotFound, err)
		}
		return teacher.TeacherReadOnlyDTO{}, err
	}

	return teacher.ToReadOnlyDTO(t), nil
}

// CreateTeacher answers 200 with a Location header naming the new teacher.
// Any failure after validation becomes the generic insert error.
func (h *TeacherHandler) CreateTeacher(c echo.Context, req *teacher.TeacherInsertDTO) (teacher.TeacherReadOnlyDTO, error) {
	t, err := h.service.InsertTeacher(c.Request().Context(), *req)
	if err != nil {
		return teacher.TeacherReadOnlyDTO{}, errs.NewInsertFailureError(err)
	}

	c.Response().Header().Set(echo.HeaderLocation, resourceLocation(c, t.ID))

	return teacher.ToReadOnlyDTO(t), nil
}

func (h *TeacherHandler) UpdateTeacher(c echo.Context, req *UpdateTeacherRequest) (teacher.TeacherReadOnlyDTO, error) {
	t, err := h.service.UpdateTeacher(c.Request().Context(), req.TeacherUpdateDTO)
	if err != nil {
		if errors.Is(err, service.ErrTeacherNotFound) {
			return teacher.TeacherReadOnlyDTO{}, errs.NewResourceNotFoundError(errs.MessageTeacherNotFound, err)
		}
		return teacher.TeacherReadOnlyDTO{}, err
	}

	return teacher.ToReadOnlyDTO(t), nil
}

// DeleteTeacher returns the record as it was fetched before deletion.
// A row removed between the fetch and the delete is also a 404.
func (h *TeacherHandler) DeleteTeacher(c echo.Context, req *TeacherIDRequest) (teacher.TeacherReadOnlyDTO, error) {
	ctx := c.Request().Context()

	t, err := h.service.GetTeacherByID(ctx, req.TeacherID)
	if err != nil {
		if errors.Is(err, service.ErrTeacherNotFound) {
			return teacher.TeacherReadOnlyDTO{}, errs.NewResourceNotFoundError(errs.MessageNotFound, err)
		}
		return teacher.TeacherReadOnlyDTO{}, err
	}

	if err := h.service.DeleteTeacher(ctx, req.TeacherID); err != nil {
		if errors.Is(err, service.ErrTeacherNotFound) {
			return teacher.TeacherReadOnlyDTO{}, errs.NewResourceNotFoundError(errs.MessageNotFound, err)
		}
		return teacher.TeacherReadOnlyDTO{}, err
	}

	return teacher.ToReadOnlyDTO(t), nil
}

// resourceLocation is the absolute URL of the request path plus "/<id>".
func resourceLocation(c echo.Context, id int64) string {
	req := c.Request()
	return fmt.Sprintf("%s://%s%s/%d", c.Scheme(), req.Host, strings.TrimSuffix(req.URL.Path, "/"), id)
}
