package router

import (
	"github.com/labstack/echo/v4"

	"github.com/betimvpp/NlwSpacetimeServer/internal/handler"
)

// registerSystemRoutes mounts the endpoints that sit outside the API:
// health, the docs UI and its static assets.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.Static("/static", handler.StaticDir)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
