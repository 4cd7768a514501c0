package teacher

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// TeacherInsertDTO is the body of a create request. The id is assigned on insert.
type TeacherInsertDTO struct {
	Firstname string `json:"firstname" validate:"required,max=255"`
	Lastname  string `json:"lastname" validate:"required,max=255"`
}

func (d *TeacherInsertDTO) Validate() error {
	return validate.Struct(d)
}

// TeacherUpdateDTO is the body of an update request. ID must equal the
// teacher id in the request path.
type TeacherUpdateDTO struct {
	ID        int64  `json:"id" validate:"required"`
	Firstname string `json:"firstname" validate:"required,max=255"`
	Lastname  string `json:"lastname" validate:"required,max=255"`
}

func (d *TeacherUpdateDTO) Validate() error {
	return validate.Struct(d)
}

// TeacherReadOnlyDTO is the output projection of a Teacher.
type TeacherReadOnlyDTO struct {
	ID        int64  `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}
