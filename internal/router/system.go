package router

import (
	"github.com/deppfellow/schoolapp/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers the endpoints outside the teachers resource:
// health, the docs UI and the static files it loads.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.Static("/static", h.OpenAPI.StaticDir)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
