// Package router builds the echo instance: global middlewares, system
// routes and the authenticated /memories group.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/betimvpp/NlwSpacetimeServer/internal/handler"
	"github.com/betimvpp/NlwSpacetimeServer/internal/middleware"
	"github.com/betimvpp/NlwSpacetimeServer/internal/model/memory"
	"github.com/betimvpp/NlwSpacetimeServer/internal/server"
	"github.com/betimvpp/NlwSpacetimeServer/internal/service"
)

func NewRouter(s *server.Server, h *handler.Handlers, services *service.Services) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s, services.Auth.Verifier())

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)
	registerMemoryRoutes(router, h, middlewares.Auth)

	return router
}

func registerMemoryRoutes(r *echo.Echo, h *handler.Handlers, auth *middleware.AuthMiddleware) {
	memories := r.Group("/memories", auth.RequireAuth)

	memories.GET("", handler.Handle(
		h.Memory.Handler,
		h.Memory.ListMemories,
		http.StatusOK,
		&memory.ListMemoriesPayload{},
	))

	memories.GET("/:id", handler.Handle(
		h.Memory.Handler,
		h.Memory.GetMemory,
		http.StatusOK,
		&memory.GetMemoryPayload{},
	))

	memories.POST("", handler.Handle(
		h.Memory.Handler,
		h.Memory.CreateMemory,
		http.StatusOK,
		&memory.CreateMemoryPayload{},
	))

	memories.PUT("/:id", handler.HandleNoContent(
		h.Memory.Handler,
		h.Memory.UpdateMemory,
		http.StatusOK,
		&memory.UpdateMemoryPayload{},
	))

	memories.DELETE("/:id", handler.HandleNoContent(
		h.Memory.Handler,
		h.Memory.DeleteMemory,
		http.StatusOK,
		&memory.DeleteMemoryPayload{},
	))
}
