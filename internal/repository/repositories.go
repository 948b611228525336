package repository

import (
	"github.com/betimvpp/NlwSpacetimeServer/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Memory *MemoryRepository
}

// NewRepositories builds every repository on top of the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Memory: NewMemoryRepository(s.DB.Pool),
	}
}
