package handler

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/deppfellow/schoolapp/internal/server"
	"github.com/labstack/echo/v4"
)

// DefaultStaticDir holds openapi.html and openapi.json.
const DefaultStaticDir = "static"

// OpenAPIHandler serves the API docs UI, which loads /static/openapi.json.
type OpenAPIHandler struct {
	Handler
	StaticDir string
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler:   NewHandler(s),
		StaticDir: DefaultStaticDir,
	}
}

// ServeOpenAPIUI serves openapi.html uncached so doc edits show up at once.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	templateBytes, err := os.ReadFile(filepath.Join(h.StaticDir, "openapi.html"))

	c.Response().Header().Set("Cache-Control", "no-cache")

	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	if err := c.HTML(http.StatusOK, string(templateBytes)); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}
