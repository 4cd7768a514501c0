package errs

import (
	"net/http"
	"strings"
)

// Kind enumerates the outcomes a resource operation can fail with.
type Kind int

const (
	// KindValidation is a client-input defect: 400 with the list of messages.
	KindValidation Kind = iota + 1
	// KindNotFound means the requested id or filter yields nothing: 404.
	KindNotFound
	// KindIDMismatch means the path id and body id disagree: 401.
	KindIDMismatch
	// KindInsertFailure is any non-validation failure while creating: 400.
	KindInsertFailure
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindIDMismatch:
		return "id_mismatch"
	case KindInsertFailure:
		return "insert_failure"
	default:
		return "unknown"
	}
}

// Fixed response bodies existing clients depend on.
const (
	MessageNotFound        = "Not Found"
	MessageTeacherNotFound = "Teacher not found"
	MessageUnauthorized    = "Unauthorized"
	MessageInsertError     = "Teacher insert error"
)

// ResourceError is the closed error variant of a resource operation.
//
// Validation errors render Messages as a JSON array; every other kind
// renders Message as a plain string. Cause is only ever logged.
type ResourceError struct {
	Kind     Kind
	Status   int
	Message  string
	Messages []string
	Cause    error
}

func (e *ResourceError) Error() string {
	if e.Kind == KindValidation {
		return "validation failed: " + strings.Join(e.Messages, "; ")
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ResourceError) Unwrap() error {
	return e.Cause
}

// Body returns the value written to the response.
func (e *ResourceError) Body() any {
	if e.Kind == KindValidation {
		return e.Messages
	}
	return e.Message
}

// NewValidationError creates a 400 carrying the validator messages.
func NewValidationError(messages []string) *ResourceError {
	if messages == nil {
		messages = []string{}
	}
	return &ResourceError{
		Kind:     KindValidation,
		Status:   http.StatusBadRequest,
		Messages: messages,
	}
}

// NewResourceNotFoundError creates a 404 with a plain message.
func NewResourceNotFoundError(message string, cause error) *ResourceError {
	return &ResourceError{
		Kind:    KindNotFound,
		Status:  http.StatusNotFound,
		Message: message,
		Cause:   cause,
	}
}

// NewIDMismatchError creates the 401 returned when the body id does not
// match the path id.
func NewIDMismatchError() *ResourceError {
	return &ResourceError{
		Kind:    KindIDMismatch,
		Status:  http.StatusUnauthorized,
		Message: MessageUnauthorized,
	}
}

// NewInsertFailureError creates the generic 400 returned when a create fails
// for any reason other than validation.
func NewInsertFailureError(cause error) *ResourceError {
	return &ResourceError{
		Kind:    KindInsertFailure,
		Status:  http.StatusBadRequest,
		Message: MessageInsertError,
		Cause:   cause,
	}
}
