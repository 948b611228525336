package service

import (
	"fmt"

	"github.com/betimvpp/NlwSpacetimeServer/internal/lib/job"
	"github.com/betimvpp/NlwSpacetimeServer/internal/repository"
	"github.com/betimvpp/NlwSpacetimeServer/internal/server"
)

type Services struct {
	Auth   *AuthService
	Job    *job.JobService
	Memory *MemoryService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	authService, err := NewAuthService(s)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	var notifier PublishNotifier
	if s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		Job:    s.Job,
		Auth:   authService,
		Memory: NewMemoryService(repos.Memory, notifier),
	}, nil
}
