package handler

import (
	"github.com/deppfellow/schoolapp/internal/errs"
	"github.com/deppfellow/schoolapp/internal/model/teacher"
	"github.com/deppfellow/schoolapp/internal/validation"
	"github.com/labstack/echo/v4"
)

// TeacherIDParam is the path parameter naming a teacher.
const TeacherIDParam = "teacherId"

// ListTeachersRequest carries the optional ?lastname= filter.
type ListTeachersRequest struct {
	Lastname string `json:"-"`
}

func NewListTeachersRequest() *ListTeachersRequest { return &ListTeachersRequest{} }

func (r *ListTeachersRequest) BindParams(c echo.Context) error {
	r.Lastname = c.QueryParam("lastname")
	return nil
}

func (r *ListTeachersRequest) Validate() error { return nil }

// TeacherIDRequest addresses a single teacher by path id.
type TeacherIDRequest struct {
	TeacherID int64 `json:"-"`
}

func NewTeacherIDRequest() *TeacherIDRequest { return &TeacherIDRequest{} }

func (r *TeacherIDRequest) BindParams(c echo.Context) error {
	id, err := bindTeacherID(c)
	r.TeacherID = id
	return err
}

func (r *TeacherIDRequest) Validate() error { return nil }

func NewTeacherInsertRequest() *teacher.TeacherInsertDTO { return &teacher.TeacherInsertDTO{} }

// UpdateTeacherRequest is the update body plus the id from the path.
type UpdateTeacherRequest struct {
	TeacherID int64 `json:"-"`
	teacher.TeacherUpdateDTO
}

func NewUpdateTeacherRequest() *UpdateTeacherRequest { return &UpdateTeacherRequest{} }

func (r *UpdateTeacherRequest) BindParams(c echo.Context) error {
	id, err := bindTeacherID(c)
	r.TeacherID = id
	return err
}

// Validate rejects an id mismatch before looking at any other field.
func (r *UpdateTeacherRequest) Validate() error {
	if r.ID != r.TeacherID {
		return errs.NewIDMismatchError()
	}
	return r.TeacherUpdateDTO.Validate()
}

// bindTeacherID answers 404 for ids that cannot name a teacher.
func bindTeacherID(c echo.Context) (int64, error) {
	id, err := validation.ParseID(c.Param(TeacherIDParam))
	if err != nil {
		return 0, errs.NewResourceNotFoundError(errs.MessageNotFound, err)
	}
	return id, nil
}
