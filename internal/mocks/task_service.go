package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/herobusana/tasktracker-api/internal/domain"
	"github.com/herobusana/tasktracker-api/internal/service"
	"github.com/herobusana/tasktracker-api/internal/store"
)

// MockTaskService implements service.TaskService for testing
type MockTaskService struct {
	// Function fields for customizable behavior
	ListFn     func(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error)
	GetFn      func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	CreateFn   func(ctx context.Context, input service.CreateTaskInput, actorID uuid.UUID) (*domain.Task, error)
	UpdateFn   func(ctx context.Context, id uuid.UUID, update domain.TaskUpdate, actorID uuid.UUID) (*domain.Task, error)
	DeleteFn   func(ctx context.Context, id uuid.UUID) error
	ListLogsFn func(ctx context.Context, taskID uuid.UUID) ([]*domain.TaskLog, error)

	// Default values used when functions aren't explicitly defined
	Tasks []*domain.Task
	Task  *domain.Task
	Logs  []*domain.TaskLog
	Err   error
}

// List implements the service.TaskService interface
func (m *MockTaskService) List(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, filter)
	}
	return m.Tasks, m.Err
}

// Get implements the service.TaskService interface
func (m *MockTaskService) Get(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return m.Task, m.Err
}

// Create implements the service.TaskService interface
func (m *MockTaskService) Create(
	ctx context.Context,
	input service.CreateTaskInput,
	actorID uuid.UUID,
) (*domain.Task, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, input, actorID)
	}
	return m.Task, m.Err
}

// Update implements the service.TaskService interface
func (m *MockTaskService) Update(
	ctx context.Context,
	id uuid.UUID,
	update domain.TaskUpdate,
	actorID uuid.UUID,
) (*domain.Task, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, update, actorID)
	}
	return m.Task, m.Err
}

// Delete implements the service.TaskService interface
func (m *MockTaskService) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return m.Err
}

// ListLogs implements the service.TaskService interface
func (m *MockTaskService) ListLogs(ctx context.Context, taskID uuid.UUID) ([]*domain.TaskLog, error) {
	if m.ListLogsFn != nil {
		return m.ListLogsFn(ctx, taskID)
	}
	return m.Logs, m.Err
}

// MockDashboardService implements service.DashboardService for testing
type MockDashboardService struct {
	// SummaryFn allows test cases to mock the Summary behavior
	SummaryFn func(ctx context.Context) (*service.DashboardSummary, error)

	// Default values used when SummaryFn isn't defined
	Result *service.DashboardSummary
	Err    error
}

// Summary implements the service.DashboardService interface
func (m *MockDashboardService) Summary(ctx context.Context) (*service.DashboardSummary, error) {
	if m.SummaryFn != nil {
		return m.SummaryFn(ctx)
	}
	return m.Result, m.Err
}
