// Package service contains the application services that orchestrate domain
// entities, stores, and transactions.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/herobusana/tasktracker-api/internal/domain"
	"github.com/herobusana/tasktracker-api/internal/store"
)

// CreateTaskInput carries the fields accepted when creating a task.
// Title and AssignedTo are required; Status and Priority fall back to
// their defaults when empty.
type CreateTaskInput struct {
	Title       string
	Description string
	AssignedTo  string
	Status      domain.TaskStatus
	Priority    string
	StartDate   *time.Time
	DueDate     *time.Time
}

// TaskService provides task CRUD operations with transactional audit logging.
// Every mutation that changes a task's status commits exactly one TaskLog
// record in the same transaction as the task write.
type TaskService interface {
	// List retrieves tasks matching the filter, newest first.
	List(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error)

	// Get retrieves a single task by ID.
	Get(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Create validates the input and atomically creates the task together
	// with its initial audit record (old status nil).
	Create(ctx context.Context, input CreateTaskInput, actorID uuid.UUID) (*domain.Task, error)

	// Update applies a partial update. If the status changes, an audit
	// record is appended in the same transaction; the task's completion
	// date is latched on the first transition into Completed.
	Update(ctx context.Context, id uuid.UUID, update domain.TaskUpdate, actorID uuid.UUID) (*domain.Task, error)

	// Delete removes a task and, via cascade, its audit trail.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListLogs retrieves the audit trail for a task, newest first.
	ListLogs(ctx context.Context, taskID uuid.UUID) ([]*domain.TaskLog, error)
}

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	taskStore store.TaskStore
	logStore  store.TaskLogStore
	db        *sql.DB
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService.
func NewTaskService(
	taskStore store.TaskStore,
	logStore store.TaskLogStore,
	db *sql.DB,
	logger *slog.Logger,
) *TaskServiceImpl {
	return &TaskServiceImpl{
		taskStore: taskStore,
		logStore:  logStore,
		db:        db,
		logger:    logger.With("component", "task_service"),
	}
}

// Ensure TaskServiceImpl implements TaskService interface
var _ TaskService = (*TaskServiceImpl)(nil)

// List retrieves tasks matching the filter, newest first.
func (s *TaskServiceImpl) List(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	tasks, err := s.taskStore.List(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list tasks",
			"error", err,
			"filter_status", filter.Status,
			"filter_assigned_to", filter.AssignedTo)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	s.logger.Debug("listed tasks",
		"count", len(tasks),
		"filter_status", filter.Status,
		"filter_assigned_to", filter.AssignedTo)

	return tasks, nil
}

// Get retrieves a single task by ID.
func (s *TaskServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			s.logger.Debug("task not found", "task_id", id)
			return nil, err
		}
		s.logger.Error("failed to retrieve task", "error", err, "task_id", id)
		return nil, fmt.Errorf("failed to retrieve task: %w", err)
	}

	return task, nil
}

// Create validates the input and creates the task together with its initial
// audit record in a single transaction. Either both rows commit or neither does.
func (s *TaskServiceImpl) Create(
	ctx context.Context,
	input CreateTaskInput,
	actorID uuid.UUID,
) (*domain.Task, error) {
	task, err := domain.NewTask(
		input.Title,
		input.Description,
		input.AssignedTo,
		input.Status,
		input.Priority,
		input.StartDate,
		input.DueDate,
		actorID,
	)
	if err != nil {
		s.logger.Debug("task creation rejected by validation", "error", err)
		return nil, err
	}

	initialLog, err := domain.NewTaskLog(task.ID, nil, task.Status, actorID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to build initial task log: %w", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.taskStore.WithTx(tx).Create(ctx, task); err != nil {
			return err
		}
		return s.logStore.WithTx(tx).Append(ctx, initialLog)
	})
	if err != nil {
		s.logger.Error("failed to create task",
			"error", err,
			"task_id", task.ID)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("task created",
		"task_id", task.ID,
		"assigned_to", task.AssignedTo,
		"status", task.Status,
		"created_by", actorID)

	return task, nil
}

// Update applies a partial update within a transaction. The task row is
// locked for the duration so that two concurrent status changes on the same
// task serialize instead of losing one audit record. When the status changes,
// exactly one audit record is appended; updates that leave the status
// untouched append nothing.
func (s *TaskServiceImpl) Update(
	ctx context.Context,
	id uuid.UUID,
	update domain.TaskUpdate,
	actorID uuid.UUID,
) (*domain.Task, error) {
	var updated *domain.Task

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		taskStore := s.taskStore.WithTx(tx)

		task, err := taskStore.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		oldStatus, statusChanged := task.Apply(update)

		if err := task.Validate(); err != nil {
			return err
		}

		if err := taskStore.Update(ctx, task); err != nil {
			return err
		}

		if statusChanged {
			reason := ""
			if update.ChangeReason != nil {
				reason = *update.ChangeReason
			}

			log, err := domain.NewTaskLog(task.ID, &oldStatus, task.Status, actorID, reason)
			if err != nil {
				return fmt.Errorf("failed to build task log: %w", err)
			}

			if err := s.logStore.WithTx(tx).Append(ctx, log); err != nil {
				return err
			}
		}

		updated = task
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			s.logger.Debug("task not found for update", "task_id", id)
			return nil, err
		}
		if errors.Is(err, domain.ErrInvalidStatus) ||
			errors.Is(err, domain.ErrEmptyTaskTitle) ||
			errors.Is(err, domain.ErrEmptyTaskAssignee) {
			s.logger.Debug("task update rejected by validation", "error", err, "task_id", id)
			return nil, err
		}
		s.logger.Error("failed to update task", "error", err, "task_id", id)
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Info("task updated",
		"task_id", id,
		"status", updated.Status,
		"changed_by", actorID)

	return updated, nil
}

// Delete removes a task. Its audit records go with it through the cascade
// constraint, so no orphan logs remain queryable.
func (s *TaskServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.taskStore.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			s.logger.Debug("task not found for delete", "task_id", id)
			return err
		}
		s.logger.Error("failed to delete task", "error", err, "task_id", id)
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Info("task deleted", "task_id", id)
	return nil
}

// ListLogs retrieves the audit trail for a task, newest first. An unknown
// task yields an empty slice, matching the behavior of the logs endpoint
// after a task has been deleted.
func (s *TaskServiceImpl) ListLogs(ctx context.Context, taskID uuid.UUID) ([]*domain.TaskLog, error) {
	logs, err := s.logStore.ListByTask(ctx, taskID)
	if err != nil {
		s.logger.Error("failed to list task logs", "error", err, "task_id", taskID)
		return nil, fmt.Errorf("failed to list task logs: %w", err)
	}

	return logs, nil
}
