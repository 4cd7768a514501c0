// Package handler is the first layer after the router.
//
// It binds and validates requests through the validation package,
// calls the service layer and shapes the response.
package handler

import (
	"github.com/deppfellow/schoolapp/internal/server"
	"github.com/deppfellow/schoolapp/internal/service"
)

// Handlers groups all HTTP handlers so the router receives a single value.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Teacher *TeacherHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Teacher: NewTeacherHandler(s, services.Teacher),
	}
}
