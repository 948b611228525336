package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/betimvpp/NlwSpacetimeServer/internal/errs"
	"github.com/betimvpp/NlwSpacetimeServer/internal/model/memory"
)

// MemoryStore is the persistence the memory service needs.
// *repository.MemoryRepository implements it.
type MemoryStore interface {
	ListByOwner(ctx context.Context, userID string) ([]memory.Memory, error)
	GetByID(ctx context.Context, id string) (*memory.Memory, error)
	Create(ctx context.Context, m *memory.Memory) (*memory.Memory, error)
	Update(ctx context.Context, m *memory.Memory) error
	Delete(ctx context.Context, id string) error
}

// PublishNotifier is told about memories that just became public.
type PublishNotifier interface {
	NotifyMemoryPublished(ctx context.Context, m *memory.Memory) error
}

type MemoryService struct {
	store    MemoryStore
	notifier PublishNotifier
	newID    func() string
	now      func() time.Time
}

type MemoryOption func(*MemoryService)

// WithIDGenerator replaces uuid.NewString as the id source.
func WithIDGenerator(f func() string) MemoryOption {
	return func(s *MemoryService) { s.newID = f }
}

// WithClock replaces the wall clock used for createdAt.
func WithClock(f func() time.Time) MemoryOption {
	return func(s *MemoryService) { s.now = f }
}

// NewMemoryService builds the service. notifier may be nil.
func NewMemoryService(store MemoryStore, notifier PublishNotifier, opts ...MemoryOption) *MemoryService {
	s := &MemoryService{
		store:    store,
		notifier: notifier,
		newID:    uuid.NewString,
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListMemories returns the caller's own memories, oldest first. Public
// memories of other users are never included.
func (s *MemoryService) ListMemories(ctx context.Context, userID string) ([]memory.Summary, error) {
	memories, err := s.store.ListByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return memory.Summaries(memories), nil
}

// GetMemory returns the memory when the caller owns it or it is public.
func (s *MemoryService) GetMemory(ctx context.Context, userID string, payload *memory.GetMemoryPayload) (*memory.Memory, error) {
	m, err := s.store.GetByID(ctx, payload.ID)
	if err != nil {
		return nil, err
	}

	if !m.CanRead(userID) {
		return nil, errs.NewAccessDeniedError()
	}

	return m, nil
}

// CreateMemory stores a new memory owned by the caller.
func (s *MemoryService) CreateMemory(ctx context.Context, userID string, payload *memory.CreateMemoryPayload) (*memory.Memory, error) {
	created, err := s.store.Create(ctx, &memory.Memory{
		ID:         s.newID(),
		Content:    *payload.Content,
		ConvertURL: *payload.ConvertURL,
		IsPublic:   payload.IsPublic.Bool(),
		UserID:     userID,
		CreatedAt:  s.now(),
	})
	if err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("memory_id", created.ID).
		Bool("is_public", created.IsPublic).
		Msg("memory created")

	if created.IsPublic {
		s.notifyPublished(ctx, created)
	}

	return created, nil
}

// UpdateMemory replaces content, convertUrl and isPublic of a memory the
// caller owns.
//
// The ownership check and the write are separate statements; a concurrent
// delete in between surfaces as not found.
func (s *MemoryService) UpdateMemory(ctx context.Context, userID string, payload *memory.UpdateMemoryPayload) error {
	m, err := s.store.GetByID(ctx, payload.ID)
	if err != nil {
		return err
	}

	if !m.CanWrite(userID) {
		return errs.NewAccessDeniedError()
	}

	wasPublic := m.IsPublic

	m.Content = *payload.Content
	m.ConvertURL = *payload.ConvertURL
	m.IsPublic = payload.IsPublic.Bool()

	if err := s.store.Update(ctx, m); err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().
		Str("memory_id", m.ID).
		Bool("is_public", m.IsPublic).
		Msg("memory updated")

	if m.IsPublic && !wasPublic {
		s.notifyPublished(ctx, m)
	}

	return nil
}

// DeleteMemory permanently removes a memory the caller owns.
func (s *MemoryService) DeleteMemory(ctx context.Context, userID string, payload *memory.DeleteMemoryPayload) error {
	m, err := s.store.GetByID(ctx, payload.ID)
	if err != nil {
		return err
	}

	if !m.CanWrite(userID) {
		return errs.NewAccessDeniedError()
	}

	if err := s.store.Delete(ctx, m.ID); err != nil {
		return err
	}

	zerolog.Ctx(ctx).Info().Str("memory_id", m.ID).Msg("memory deleted")

	return nil
}

// notifyPublished never fails the request: the write already happened.
func (s *MemoryService) notifyPublished(ctx context.Context, m *memory.Memory) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyMemoryPublished(ctx, m); err != nil {
		zerolog.Ctx(ctx).Warn().
			Err(err).
			Str("memory_id", m.ID).
			Msg("failed to enqueue memory published notification")
	}
}
