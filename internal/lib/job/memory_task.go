package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/betimvpp/NlwSpacetimeServer/internal/model/memory"
)

const (
	// TaskMemoryPublished is enqueued when a memory becomes public.
	TaskMemoryPublished = "email:memory_published"
)

// MemoryPublishedPayload is the JSON body of a TaskMemoryPublished task.
type MemoryPublishedPayload struct {
	UserID   string `json:"user_id"`
	MemoryID string `json:"memory_id"`
	Excerpt  string `json:"excerpt"`
}

// NewMemoryPublishedTask builds the task: default queue, 3 retries, 30s timeout.
func NewMemoryPublishedTask(m *memory.Memory) (*asynq.Task, error) {
	payload, err := json.Marshal(MemoryPublishedPayload{
		UserID:   m.UserID,
		MemoryID: m.ID,
		Excerpt:  memory.Excerpt(m.Content),
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskMemoryPublished,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// NotifyMemoryPublished enqueues a TaskMemoryPublished for m.
func (j *JobService) NotifyMemoryPublished(ctx context.Context, m *memory.Memory) error {
	task, err := NewMemoryPublishedTask(m)
	if err != nil {
		return fmt.Errorf("failed to build memory published task: %w", err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue memory published task for memory_id=%s: %w", m.ID, err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Str("memory_id", m.ID).
		Msg("enqueued memory published task")

	return nil
}
