package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/deppfellow/schoolapp/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Validate usually runs validator.Struct on the receiver and returns
// validator.ValidationErrors. Returning an *errs.ResourceError short-circuits
// message extraction and is passed to the client unchanged.
type Validatable interface {
	Validate() error
}

// ParamBinder is implemented by payloads that read path or query parameters.
// BindParams runs after the body is decoded and before Validate.
type ParamBinder interface {
	BindParams(c echo.Context) error
}

// CustomValidationError is a validation issue validator tags cannot express.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

var binder = &echo.DefaultBinder{}

// BindAndValidate decodes the request into payload and validates it.
//
// Flow:
//  1. decode the JSON body (empty bodies are skipped);
//  2. BindParams, when payload is a ParamBinder;
//  3. payload.Validate().
//
// Failures come back as *errs.ResourceError: a body or rule violation is a
// 400 with the list of messages. A body that is not JSON keeps echo's 415.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := binder.BindBody(c, payload); err != nil {
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code == http.StatusUnsupportedMediaType {
			return err
		}
		return errs.NewValidationError([]string{bindErrorMessage(err)})
	}

	if pb, ok := payload.(ParamBinder); ok {
		if err := pb.BindParams(c); err != nil {
			return err
		}
	}

	if err := payload.Validate(); err != nil {
		var resErr *errs.ResourceError
		if errors.As(err, &resErr) {
			return resErr
		}
		return errs.NewValidationError(Messages(err))
	}

	return nil
}

// Validate runs v's rules and returns the messages; an empty slice means v is acceptable.
func Validate(v Validatable) []string {
	if err := v.Validate(); err != nil {
		return Messages(err)
	}
	return []string{}
}

// Messages renders a validation error as "<field> <problem>" strings.
func Messages(err error) []string {
	fieldErrors := extractValidationError(err)

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, fe.Field+" "+fe.Error)
	}
	return messages
}

// bindErrorMessage keeps decoder details such as Go type names out of the
// response.
func bindErrorMessage(err error) string {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return jsonFieldName(typeErr.Field) + " has the wrong type"
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok && msg != "" {
			return "malformed request body: " + msg
		}
	}
	return "malformed request body"
}

// jsonFieldName is the last element of a decoder field path such as
// "TeacherUpdateDTO.firstname".
func jsonFieldName(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		path = path[i+1:]
	}
	if path == "" {
		return "request body"
	}
	return path
}

func extractValidationError(err error) []errs.FieldError {
	var fieldErrors []errs.FieldError

	var customValidationErrors CustomValidationErrors
	if errors.As(err, &customValidationErrors) {
		for _, cerr := range customValidationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: cerr.Field,
				Error: cerr.Message,
			})
		}
		return fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []errs.FieldError{{Field: "request", Error: err.Error()}}
	}

	for _, verr := range validationErrors {
		var msg string

		switch verr.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if verr.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", verr.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", verr.Param())
			}

		case "max":
			if verr.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", verr.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", verr.Param())
			}

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", verr.Param())

		case "email":
			msg = "must be a valid email address"

		case "dive":
			msg = "some items are invalid"

		default:
			if verr.Param() != "" {
				msg = fmt.Sprintf("failed %s:%s", verr.Tag(), verr.Param())
			} else {
				msg = fmt.Sprintf("failed %s", verr.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: strings.ToLower(verr.Field()),
			Error: msg,
		})
	}

	return fieldErrors
}
