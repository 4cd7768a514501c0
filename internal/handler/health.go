package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/schoolapp/internal/middleware"
	"github.com/deppfellow/schoolapp/internal/server"
	"github.com/labstack/echo/v4"
)

// HealthHandler serves /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth runs every registered dependency check. It answers 200 when
// the required checks pass and 503 otherwise; the body lists each check.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	report := h.server.Health.Run(c.Request().Context())

	if !report.Healthy() {
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		if h.server.LoggerService != nil && h.server.LoggerService.GetApplication() != nil {
			h.server.LoggerService.GetApplication().RecordCustomEvent(
				"HealthCheckError",
				map[string]interface{}{
					"check_type":        "overall",
					"operation":         "health_check",
					"error_type":        "overall_unhealthy",
					"total_duration_ms": time.Since(start).Milliseconds(),
				},
			)
		}

		return c.JSON(http.StatusServiceUnavailable, report)
	}

	logger.Info().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, report); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}
