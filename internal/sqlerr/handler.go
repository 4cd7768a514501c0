package sqlerr

import (
	"errors"

	"github.com/deppfellow/schoolapp/internal/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrCode reports the Code of err, Other when err carries no Postgres error.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return MapCode(pgerr.Code)
	}
	return Other
}

// ConvertPgError converts a raw pgconn.PgError into an *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// Unavailable reports whether the database refused work for a reason that
// clears on its own: connection slots exhausted, shutdown or startup.
func (e *Error) Unavailable() bool {
	switch e.Code {
	case TooManyConnections, AdminShutdown, CannotConnectNow:
		return true
	}
	return false
}

// HandleError converts a database error that reached the error handler into
// an *errs.HTTPError.
//
//   - *errs.HTTPError and *errs.ResourceError are returned unchanged
//   - a database that is shutting down or out of connections becomes a 503
//   - anything else becomes a 500; the cause is only logged
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var resErr *errs.ResourceError
	if errors.As(err, &resErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) && ConvertPgError(pgerr).Unavailable() {
		return errs.NewServiceUnavailableError("Database is temporarily unavailable")
	}

	return errs.NewInternalServerError()
}
