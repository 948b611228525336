// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - tasks are enqueued (producer) with asynq.Client
//   - a server runs workers that process them (consumer) with asynq.Server
package job

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/betimvpp/NlwSpacetimeServer/internal/config"
	"github.com/betimvpp/NlwSpacetimeServer/internal/lib/email"
	"github.com/betimvpp/NlwSpacetimeServer/internal/lib/identity"
)

// Mailer sends the notification e-mails job handlers produce.
type Mailer interface {
	SendMemoryPublishedEmail(ctx context.Context, to, firstName, memoryID, excerpt string) error
}

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	// Client is used to enqueue tasks into Redis.
	Client *asynq.Client

	server *asynq.Server
	logger *zerolog.Logger

	// mailer and directory are nil when e-mail delivery is not configured;
	// handlers acknowledge their tasks without doing anything in that case.
	mailer    Mailer
	directory identity.Directory
}

// NewJobService creates a JobService configured to use Redis from cfg.
//
// Queue weights give "critical" tasks the larger share of the 10 workers.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisAddr := cfg.Redis.Address

	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr: redisAddr,
	})

	server := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger: newAsynqLogger(logger),
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
	}
}

// InitHandlers wires the dependencies the task handlers need. directory may
// be nil when no user directory is available.
func (j *JobService) InitHandlers(cfg *config.Config, directory identity.Directory) {
	if cfg.Integration.EmailEnabled() {
		j.mailer = email.NewClient(cfg, j.logger)
	}
	if directory != nil {
		j.directory = directory
	}
}

// Start registers the task handlers and starts the worker server in the
// background.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskMemoryPublished, j.handleMemoryPublishedTask)

	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	return nil
}

// Stop waits for in-flight tasks and closes the enqueue client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}
