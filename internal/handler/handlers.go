package handler

import (
	"github.com/betimvpp/NlwSpacetimeServer/internal/server"
	"github.com/betimvpp/NlwSpacetimeServer/internal/service"
)

// Handlers groups every HTTP handler so the router receives a single value.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Memory  *MemoryHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Memory:  NewMemoryHandler(s, services.Memory),
	}
}
