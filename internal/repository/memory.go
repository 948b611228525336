package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/betimvpp/NlwSpacetimeServer/internal/model/memory"
	"github.com/betimvpp/NlwSpacetimeServer/internal/sqlerr"
)

// ErrMemoryNotFound is returned when no row matches the requested id. The
// table prefix lets sqlerr render it as "Memory not found".
var ErrMemoryNotFound = fmt.Errorf("%smemories: %w", sqlerr.TablePrefix, pgx.ErrNoRows)

const memoryColumns = `id, content, convert_url, is_public, user_id, created_at`

type MemoryRepository struct {
	db DBTX
}

func NewMemoryRepository(db DBTX) *MemoryRepository {
	return &MemoryRepository{db: db}
}

// ListByOwner returns every memory owned by userID, oldest first.
func (r *MemoryRepository) ListByOwner(ctx context.Context, userID string) ([]memory.Memory, error) {
	stmt := `
		SELECT ` + memoryColumns + `
		FROM memories
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(ctx, stmt, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to execute list memories query for user_id=%s: %w", userID, err)
	}

	memories, err := pgx.CollectRows(rows, pgx.RowToStructByName[memory.Memory])
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:memories for user_id=%s: %w", userID, err)
	}

	return memories, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*memory.Memory, error) {
	stmt := `
		SELECT ` + memoryColumns + `
		FROM memories
		WHERE id = $1
	`

	rows, err := r.db.Query(ctx, stmt, id)
	if err != nil {
		return nil, fmt.Errorf("failed to execute get memory query for id=%s: %w", id, err)
	}

	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[memory.Memory])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMemoryNotFound
		}
		return nil, fmt.Errorf("failed to collect row from table:memories for id=%s: %w", id, err)
	}

	return &m, nil
}

// Create inserts m as given. ID, UserID and CreatedAt must already be set.
func (r *MemoryRepository) Create(ctx context.Context, m *memory.Memory) (*memory.Memory, error) {
	stmt := `
		INSERT INTO memories (` + memoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + memoryColumns

	rows, err := r.db.Query(ctx, stmt,
		m.ID,
		m.Content,
		m.ConvertURL,
		m.IsPublic,
		m.UserID,
		m.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to execute create memory query for user_id=%s: %w", m.UserID, err)
	}

	created, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[memory.Memory])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:memories for user_id=%s: %w", m.UserID, err)
	}

	return &created, nil
}

// Update overwrites the mutable fields of the memory with m.ID. It returns
// ErrMemoryNotFound when the row no longer exists.
func (r *MemoryRepository) Update(ctx context.Context, m *memory.Memory) error {
	stmt := `
		UPDATE memories
		SET content = $2,
			convert_url = $3,
			is_public = $4
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, stmt, m.ID, m.Content, m.ConvertURL, m.IsPublic)
	if err != nil {
		return fmt.Errorf("failed to execute update memory query for id=%s: %w", m.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMemoryNotFound
	}

	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM memories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to execute delete memory query for id=%s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMemoryNotFound
	}

	return nil
}
