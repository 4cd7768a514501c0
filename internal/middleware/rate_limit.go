package middleware

import (
	"net/http"

	"github.com/deppfellow/schoolapp/internal/errs"
	"github.com/deppfellow/schoolapp/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/newrelic/go-agent/v3/newrelic"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware limits requests per client IP and reports hits to
// New Relic.
type RateLimitMiddleware struct {
	server *server.Server
	nrApp  *newrelic.Application
}

func NewRateLimitMiddleware(s *server.Server, nrApp *newrelic.Application) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
		nrApp:  nrApp,
	}
}

// Enabled reports whether a request rate is configured.
func (r *RateLimitMiddleware) Enabled() bool {
	return r.server.Config.Server.RateLimitRPS > 0
}

// Limit returns echo's rate limiter backed by an in-memory token bucket per IP.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	cfg := r.server.Config.Server

	burst := cfg.RateLimitBurst
	if burst == 0 {
		burst = int(cfg.RateLimitRPS) + 1
	}

	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:  rate.Limit(cfg.RateLimitRPS),
		Burst: burst,
	})

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewInternalServerError()
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())
			GetLogger(c).Warn().Str("identifier", identifier).Msg("rate limit exceeded")
			return errs.NewTooManyRequestsError(http.StatusText(http.StatusTooManyRequests))
		},
	})
}

// RecordRateLimitHit records a RateLimitHit custom event.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if r.nrApp != nil {
		r.nrApp.RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
