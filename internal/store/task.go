package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/herobusana/tasktracker-api/internal/domain"
)

// TaskFilter narrows the result of TaskStore.List. Empty fields impose no
// constraint; non-empty fields are combined with AND semantics.
type TaskFilter struct {
	Status     string
	AssignedTo string
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// List retrieves tasks matching the filter, ordered by creation time
	// descending. An empty filter returns all tasks.
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// GetByIDForUpdate retrieves a task by its ID while taking a row lock,
	// so that concurrent status changes on the same task serialize instead
	// of racing. Must be called within a transaction.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Create saves a new task to the store.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// Update persists the current state of an existing task.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID. The task's audit log
	// records are removed with it (cascade).
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) TaskStore
}
