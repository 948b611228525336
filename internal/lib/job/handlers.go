package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// handleMemoryPublishedTask e-mails the owner of a memory that became public.
//
// Returning an error makes Asynq retry the task; malformed payloads are
// dropped with SkipRetry.
func (j *JobService) handleMemoryPublishedTask(ctx context.Context, t *asynq.Task) error {
	var p MemoryPublishedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal memory published payload: %v: %w", err, asynq.SkipRetry)
	}

	logger := j.logger.With().
		Str("type", TaskMemoryPublished).
		Str("user_id", p.UserID).
		Str("memory_id", p.MemoryID).
		Logger()

	if j.mailer == nil || j.directory == nil {
		logger.Info().Msg("email delivery not configured, skipping memory published task")
		return nil
	}

	profile, err := j.directory.Lookup(ctx, p.UserID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to resolve memory owner")
		return err
	}

	if err := j.mailer.SendMemoryPublishedEmail(ctx, profile.Email, profile.FirstName, p.MemoryID, p.Excerpt); err != nil {
		logger.Error().Err(err).Msg("Failed to send memory published email")
		return err
	}

	logger.Info().Msg("Successfully sent memory published email")

	return nil
}
