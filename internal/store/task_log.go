package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/herobusana/tasktracker-api/internal/domain"
)

// TaskLogStore defines the interface for the immutable task audit trail.
// Implementations only ever insert and read; existing records are never
// updated or deleted through this interface.
type TaskLogStore interface {
	// Append adds a new audit record to the trail.
	// Returns validation errors from the domain TaskLog if data is invalid.
	Append(ctx context.Context, log *domain.TaskLog) error

	// ListByTask retrieves all audit records for a task, newest first.
	// An unknown task ID yields an empty slice, not an error.
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.TaskLog, error)

	// ListRecent retrieves the most recent audit records across all tasks,
	// newest first and bounded by limit. Each record is enriched with the
	// task title and the display name of the actor; the actor name is empty
	// when the user has been deleted since the change.
	ListRecent(ctx context.Context, limit int) ([]*domain.TaskActivity, error)

	// WithTx returns a new TaskLogStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) TaskLogStore
}
