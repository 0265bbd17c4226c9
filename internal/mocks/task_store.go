package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/herobusana/tasktracker-api/internal/domain"
	"github.com/herobusana/tasktracker-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	// Function fields for customizable behavior
	ListFn             func(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error)
	GetByIDFn          func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	GetByIDForUpdateFn func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	CreateFn           func(ctx context.Context, task *domain.Task) error
	UpdateFn           func(ctx context.Context, task *domain.Task) error
	DeleteFn           func(ctx context.Context, id uuid.UUID) error

	// Data for default implementation
	Tasks map[uuid.UUID]*domain.Task
	Err   error
}

// NewMockTaskStore creates a new mock store with initialized defaults
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks: make(map[uuid.UUID]*domain.Task),
	}
}

// List implements the TaskStore interface
func (m *MockTaskStore) List(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}

	if m.Err != nil {
		return nil, m.Err
	}

	var tasks []*domain.Task
	for _, task := range m.Tasks {
		if filter.Status != "" && string(task.Status) != filter.Status {
			continue
		}
		if filter.AssignedTo != "" && task.AssignedTo != filter.AssignedTo {
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// GetByID implements the TaskStore interface
func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	if m.Err != nil {
		return nil, m.Err
	}

	task, exists := m.Tasks[id]
	if !exists {
		return nil, store.ErrTaskNotFound
	}
	return task, nil
}

// GetByIDForUpdate implements the TaskStore interface. The mock has no row
// locking; it behaves like GetByID unless overridden.
func (m *MockTaskStore) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return m.GetByID(ctx, id)
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	if m.Err != nil {
		return m.Err
	}

	m.Tasks[task.ID] = task
	return nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}

	if m.Err != nil {
		return m.Err
	}

	if _, exists := m.Tasks[task.ID]; !exists {
		return store.ErrTaskNotFound
	}
	m.Tasks[task.ID] = task
	return nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if m.Err != nil {
		return m.Err
	}

	if _, exists := m.Tasks[id]; !exists {
		return store.ErrTaskNotFound
	}
	delete(m.Tasks, id)
	return nil
}

// WithTx implements the TaskStore interface. The mock has no real
// transactions, so it returns itself.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}
