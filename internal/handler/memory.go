package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/betimvpp/NlwSpacetimeServer/internal/middleware"
	"github.com/betimvpp/NlwSpacetimeServer/internal/model/memory"
	"github.com/betimvpp/NlwSpacetimeServer/internal/server"
	"github.com/betimvpp/NlwSpacetimeServer/internal/service"
)

// MemoryHandler serves /memories. Every route sits behind RequireAuth, so
// the caller's subject is always present.
type MemoryHandler struct {
	Handler
	memoryService *service.MemoryService
}

func NewMemoryHandler(s *server.Server, memoryService *service.MemoryService) *MemoryHandler {
	return &MemoryHandler{
		Handler:       NewHandler(s),
		memoryService: memoryService,
	}
}

func (h *MemoryHandler) ListMemories(c echo.Context, _ *memory.ListMemoriesPayload) ([]memory.Summary, error) {
	return h.memoryService.ListMemories(c.Request().Context(), middleware.GetUserID(c))
}

func (h *MemoryHandler) GetMemory(c echo.Context, payload *memory.GetMemoryPayload) (*memory.Memory, error) {
	return h.memoryService.GetMemory(c.Request().Context(), middleware.GetUserID(c), payload)
}

func (h *MemoryHandler) CreateMemory(c echo.Context, payload *memory.CreateMemoryPayload) (*memory.Memory, error) {
	return h.memoryService.CreateMemory(c.Request().Context(), middleware.GetUserID(c), payload)
}

func (h *MemoryHandler) UpdateMemory(c echo.Context, payload *memory.UpdateMemoryPayload) error {
	return h.memoryService.UpdateMemory(c.Request().Context(), middleware.GetUserID(c), payload)
}

func (h *MemoryHandler) DeleteMemory(c echo.Context, payload *memory.DeleteMemoryPayload) error {
	return h.memoryService.DeleteMemory(c.Request().Context(), middleware.GetUserID(c), payload)
}
