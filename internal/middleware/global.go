package middleware

import (
	"net/http"

	"github.com/deppfellow/schoolapp/internal/errs"
	"github.com/deppfellow/schoolapp/internal/server"
	"github.com/deppfellow/schoolapp/internal/sqlerr"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// GlobalMiddlewares groups the middleware every route runs through and
// the global error handler.
type GlobalMiddlewares struct {
	server *server.Server
}

func NewGlobalMiddlewares(s *server.Server) *GlobalMiddlewares {
	return &GlobalMiddlewares{
		server: s,
	}
}

func (global *GlobalMiddlewares) CORS() echo.MiddlewareFunc {
	return middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  global.server.Config.Server.CORSAllowedOrigins,
		ExposeHeaders: []string{echo.HeaderLocation, RequestIDHeader},
	})
}

// RequestLogger writes one "API" line per request. Level follows the status.
func (global *GlobalMiddlewares) RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogError:   true,
		LogLatency: true,
		LogHost:    true,
		LogMethod:  true,
		LogURIPath: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			// The error handler has not written the response yet when a
			// handler returns an error, so derive the status from the error.
			// See https://github.com/labstack/echo/issues/2310#issuecomment-1288196898
			statusCode := v.Status
			if v.Error != nil {
				statusCode = statusOf(v.Error)
			}

			logger := GetLogger(c)

			var e *zerolog.Event
			switch {
			case statusCode >= 500:
				e = logger.Error().Err(v.Error)
			case statusCode >= 400:
				e = logger.Warn()
				if v.Error != nil {
					e = e.Str("error", v.Error.Error())
				}
			default:
				e = logger.Info()
			}

			e.
				Dur("latency", v.Latency).
				Int("status", statusCode).
				Str("method", v.Method).
				Str("uri", v.URI).
				Str("host", v.Host).
				Str("ip", c.RealIP()).
				Str("user_agent", c.Request().UserAgent()).
				Msg("API")

			return nil
		},
	})
}

func (global *GlobalMiddlewares) Recover() echo.MiddlewareFunc {
	return middleware.Recover()
}

func (global *GlobalMiddlewares) Secure() echo.MiddlewareFunc {
	return middleware.Secure()
}

// statusOf reports the status the error handler will answer err with.
func statusOf(err error) int {
	var resErr *errs.ResourceError
	var httpErr *errs.HTTPError
	var echoErr *echo.HTTPError

	switch {
	case errors.As(err, &resErr):
		return resErr.Status
	case errors.As(err, &httpErr):
		return httpErr.Status
	case errors.As(err, &echoErr):
		return echoErr.Code
	default:
		if errors.As(sqlerr.HandleError(err), &httpErr) {
			return httpErr.Status
		}
		return http.StatusInternalServerError
	}
}

// GlobalErrorHandler is the single funnel every handler error goes through.
//
// Resource errors keep their bare body: a JSON array of messages for
// validation, a plain string otherwise. Everything else is rendered with
// the HTTPError envelope.
func (global *GlobalMiddlewares) GlobalErrorHandler(err error, c echo.Context) {
	logger := *GetLogger(c)

	var resErr *errs.ResourceError
	if errors.As(err, &resErr) {
		event := logger.Warn()
		if resErr.Cause != nil {
			event = logger.Error().Stack().Err(resErr.Cause)
		}
		event.
			Int("status", resErr.Status).
			Str("error_kind", resErr.Kind.String()).
			Msg(resErr.Error())

		if !c.Response().Committed {
			var writeErr error
			if resErr.Kind == errs.KindValidation {
				writeErr = c.JSON(resErr.Status, resErr.Messages)
			} else {
				writeErr = c.String(resErr.Status, resErr.Message)
			}
			if writeErr != nil {
				logger.Error().Err(writeErr).Msg("failed to write error response")
			}
		}
		return
	}

	originalErr := err

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			if echoErr.Code == http.StatusNotFound {
				err = errs.NewNotFoundError("Route not found", false, nil)
			}
		} else {
			err = sqlerr.HandleError(err)
		}
	}

	var echoErr *echo.HTTPError
	var status int
	var code string
	var message string
	var fieldErrors []errs.FieldError
	override := false

	switch {
	case errors.As(err, &httpErr):
		status = httpErr.Status
		code = httpErr.Code
		message = httpErr.Message
		fieldErrors = httpErr.Errors
		override = httpErr.Override

	case errors.As(err, &echoErr):
		status = echoErr.Code
		code = errs.MakeUpperCaseWithUnderscores(http.StatusText(status))
		if msg, ok := echoErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(echoErr.Code)
		}

	default:
		status = http.StatusInternalServerError
		code = errs.MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError))
		message = http.StatusText(http.StatusInternalServerError)
	}

	event := logger.Error().Stack().
		Err(originalErr).
		Int("status", status).
		Str("error_code", code)
	if dbCode := sqlerr.ErrCode(originalErr); dbCode != sqlerr.Other {
		event = event.Str("db_error_code", string(dbCode))
	}
	event.Msg(message)

	if !c.Response().Committed {
		_ = c.JSON(status, errs.HTTPError{
			Code:     code,
			Message:  message,
			Status:   status,
			Override: override,
			Errors:   fieldErrors,
		})
	}
}
