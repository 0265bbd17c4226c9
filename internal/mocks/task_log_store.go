package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/herobusana/tasktracker-api/internal/domain"
	"github.com/herobusana/tasktracker-api/internal/store"
)

// MockTaskLogStore implements store.TaskLogStore for testing
type MockTaskLogStore struct {
	// Function fields for customizable behavior
	AppendFn     func(ctx context.Context, log *domain.TaskLog) error
	ListByTaskFn func(ctx context.Context, taskID uuid.UUID) ([]*domain.TaskLog, error)
	ListRecentFn func(ctx context.Context, limit int) ([]*domain.TaskActivity, error)

	// Data for default implementation. Appended logs accumulate in Logs so
	// tests can assert on the records a service produced.
	Logs       []*domain.TaskLog
	Activities []*domain.TaskActivity
	Err        error
}

// NewMockTaskLogStore creates a new mock store with initialized defaults
func NewMockTaskLogStore() *MockTaskLogStore {
	return &MockTaskLogStore{}
}

// Append implements the TaskLogStore interface
func (m *MockTaskLogStore) Append(ctx context.Context, log *domain.TaskLog) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, log)
	}

	if m.Err != nil {
		return m.Err
	}

	m.Logs = append(m.Logs, log)
	return nil
}

// ListByTask implements the TaskLogStore interface
func (m *MockTaskLogStore) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.TaskLog, error) {
	if m.ListByTaskFn != nil {
		return m.ListByTaskFn(ctx, taskID)
	}

	if m.Err != nil {
		return nil, m.Err
	}

	logs := []*domain.TaskLog{}
	for _, log := range m.Logs {
		if log.TaskID == taskID {
			logs = append(logs, log)
		}
	}
	return logs, nil
}

// ListRecent implements the TaskLogStore interface
func (m *MockTaskLogStore) ListRecent(ctx context.Context, limit int) ([]*domain.TaskActivity, error) {
	if m.ListRecentFn != nil {
		return m.ListRecentFn(ctx, limit)
	}

	if m.Err != nil {
		return nil, m.Err
	}

	if limit > len(m.Activities) {
		limit = len(m.Activities)
	}
	return m.Activities[:limit], nil
}

// WithTx implements the TaskLogStore interface. The mock has no real
// transactions, so it returns itself.
func (m *MockTaskLogStore) WithTx(tx *sql.Tx) store.TaskLogStore {
	return m
}
