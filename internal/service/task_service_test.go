package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herobusana/tasktracker-api/internal/domain"
	"github.com/herobusana/tasktracker-api/internal/mocks"
	"github.com/herobusana/tasktracker-api/internal/service"
	"github.com/herobusana/tasktracker-api/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTaskServiceFixture(t *testing.T) (service.TaskService, *mocks.MockTaskStore, *mocks.MockTaskLogStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	taskStore := mocks.NewMockTaskStore()
	logStore := mocks.NewMockTaskLogStore()
	svc := service.NewTaskService(taskStore, logStore, db, discardLogger())

	return svc, taskStore, logStore, mock
}

func TestTaskServiceCreate(t *testing.T) {
	t.Parallel()

	t.Run("creates task with initial audit record", func(t *testing.T) {
		t.Parallel()
		svc, taskStore, logStore, mock := newTaskServiceFixture(t)
		actor := uuid.New()

		mock.ExpectBegin()
		mock.ExpectCommit()

		task, err := svc.Create(context.Background(), service.CreateTaskInput{
			Title:      "Prepare sprint review",
			AssignedTo: "sara",
		}, actor)
		require.NoError(t, err)
		require.NotNil(t, task)

		assert.Equal(t, domain.TaskStatusNotStarted, task.Status)
		assert.Equal(t, domain.DefaultTaskPriority, task.Priority)
		require.NotNil(t, task.CreatedBy)
		assert.Equal(t, actor, *task.CreatedBy)

		// The task row was written
		assert.Contains(t, taskStore.Tasks, task.ID)

		// Exactly one audit record, the creation record
		require.Len(t, logStore.Logs, 1)
		log := logStore.Logs[0]
		assert.Equal(t, task.ID, log.TaskID)
		assert.Nil(t, log.OldStatus)
		assert.Equal(t, domain.TaskStatusNotStarted, log.NewStatus)
		require.NotNil(t, log.ChangedBy)
		assert.Equal(t, actor, *log.ChangedBy)
		assert.Equal(t, "Task created with status Not_Started", log.ChangeReason)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects invalid input before opening a transaction", func(t *testing.T) {
		t.Parallel()
		svc, taskStore, logStore, mock := newTaskServiceFixture(t)

		_, err := svc.Create(context.Background(), service.CreateTaskInput{
			AssignedTo: "sara",
		}, uuid.New())
		require.ErrorIs(t, err, domain.ErrEmptyTaskTitle)

		assert.Empty(t, taskStore.Tasks)
		assert.Empty(t, logStore.Logs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back when the task write fails", func(t *testing.T) {
		t.Parallel()
		svc, taskStore, logStore, mock := newTaskServiceFixture(t)

		storeErr := errors.New("insert failed")
		taskStore.CreateFn = func(ctx context.Context, task *domain.Task) error {
			return storeErr
		}

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.Create(context.Background(), service.CreateTaskInput{
			Title:      "Prepare sprint review",
			AssignedTo: "sara",
		}, uuid.New())
		require.Error(t, err)
		assert.ErrorIs(t, err, storeErr)

		// No orphan audit records
		assert.Empty(t, logStore.Logs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTaskServiceUpdate(t *testing.T) {
	t.Parallel()

	seedTask := func(t *testing.T, taskStore *mocks.MockTaskStore, status domain.TaskStatus) *domain.Task {
		t.Helper()
		task, err := domain.NewTask("Prepare sprint review", "", "sara", status, "", nil, nil, uuid.New())
		require.NoError(t, err)
		taskStore.Tasks[task.ID] = task
		return task
	}

	t.Run("status change appends one audit record", func(t *testing.T) {
		t.Parallel()
		svc, taskStore, logStore, mock := newTaskServiceFixture(t)
		task := seedTask(t, taskStore, domain.TaskStatusNotStarted)
		actor := uuid.New()

		mock.ExpectBegin()
		mock.ExpectCommit()

		newStatus := domain.TaskStatusInProgress
		updated, err := svc.Update(context.Background(), task.ID, domain.TaskUpdate{
			Status: &newStatus,
		}, actor)
		require.NoError(t, err)
		assert.Equal(t, domain.TaskStatusInProgress, updated.Status)

		require.Len(t, logStore.Logs, 1)
		log := logStore.Logs[0]
		require.NotNil(t, log.OldStatus)
		assert.Equal(t, domain.TaskStatusNotStarted, *log.OldStatus)
		assert.Equal(t, domain.TaskStatusInProgress, log.NewStatus)
		assert.Equal(t, "Status changed from Not_Started to In_Progress", log.ChangeReason)
		require.NotNil(t, log.ChangedBy)
		assert.Equal(t, actor, *log.ChangedBy)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("custom change reason is kept", func(t *testing.T) {
		t.Parallel()
		svc, taskStore, logStore, mock := newTaskServiceFixture(t)
		task := seedTask(t, taskStore, domain.TaskStatusInProgress)

		mock.ExpectBegin()
		mock.ExpectCommit()

		newStatus := domain.TaskStatusCompleted
		reason := "All review items resolved"
		_, err := svc.Update(context.Background(), task.ID, domain.TaskUpdate{
			Status:       &newStatus,
			ChangeReason: &reason,
		}, uuid.New())
		require.NoError(t, err)

		require.Len(t, logStore.Logs, 1)
		assert.Equal(t, reason, logStore.Logs[0].ChangeReason)
	})

	t.Run("no audit record without a status change", func(t *testing.T) {
		t.Parallel()
		svc, taskStore, logStore, mock := newTaskServiceFixture(t)
		task := seedTask(t, taskStore, domain.TaskStatusInProgress)

		mock.ExpectBegin()
		mock.ExpectCommit()

		newPriority := "High"
		updated, err := svc.Update(context.Background(), task.ID, domain.TaskUpdate{
			Priority: &newPriority,
		}, uuid.New())
		require.NoError(t, err)
		assert.Equal(t, "High", updated.Priority)

		assert.Empty(t, logStore.Logs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("completing a task sets the completion date", func(t *testing.T) {
		t.Parallel()
		svc, taskStore, _, mock := newTaskServiceFixture(t)
		task := seedTask(t, taskStore, domain.TaskStatusInProgress)

		mock.ExpectBegin()
		mock.ExpectCommit()

		newStatus := domain.TaskStatusCompleted
		updated, err := svc.Update(context.Background(), task.ID, domain.TaskUpdate{
			Status: &newStatus,
		}, uuid.New())
		require.NoError(t, err)
		require.NotNil(t, updated.CompletedDate)
	})

	t.Run("unknown task returns not found", func(t *testing.T) {
		t.Parallel()
		svc, _, logStore, mock := newTaskServiceFixture(t)

		mock.ExpectBegin()
		mock.ExpectRollback()

		newStatus := domain.TaskStatusCompleted
		_, err := svc.Update(context.Background(), uuid.New(), domain.TaskUpdate{
			Status: &newStatus,
		}, uuid.New())
		require.ErrorIs(t, err, store.ErrTaskNotFound)

		assert.Empty(t, logStore.Logs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid status rolls back", func(t *testing.T) {
		t.Parallel()
		svc, taskStore, logStore, mock := newTaskServiceFixture(t)
		task := seedTask(t, taskStore, domain.TaskStatusNotStarted)

		mock.ExpectBegin()
		mock.ExpectRollback()

		badStatus := domain.TaskStatus("Done")
		_, err := svc.Update(context.Background(), task.ID, domain.TaskUpdate{
			Status: &badStatus,
		}, uuid.New())
		require.ErrorIs(t, err, domain.ErrInvalidStatus)

		assert.Empty(t, logStore.Logs)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTaskServiceDelete(t *testing.T) {
	t.Parallel()

	t.Run("deletes existing task", func(t *testing.T) {
		t.Parallel()
		svc, taskStore, _, _ := newTaskServiceFixture(t)
		task, err := domain.NewTask("Prepare sprint review", "", "sara", "", "", nil, nil, uuid.New())
		require.NoError(t, err)
		taskStore.Tasks[task.ID] = task

		require.NoError(t, svc.Delete(context.Background(), task.ID))
		assert.NotContains(t, taskStore.Tasks, task.ID)
	})

	t.Run("unknown task returns not found", func(t *testing.T) {
		t.Parallel()
		svc, _, _, _ := newTaskServiceFixture(t)

		err := svc.Delete(context.Background(), uuid.New())
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestTaskServiceListLogs(t *testing.T) {
	t.Parallel()

	svc, _, logStore, _ := newTaskServiceFixture(t)
	taskID := uuid.New()

	old := domain.TaskStatusNotStarted
	log, err := domain.NewTaskLog(taskID, &old, domain.TaskStatusInProgress, uuid.New(), "")
	require.NoError(t, err)
	logStore.Logs = append(logStore.Logs, log)

	logs, err := svc.ListLogs(context.Background(), taskID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, log.ID, logs[0].ID)

	// Unknown task yields an empty trail, not an error
	logs, err = svc.ListLogs(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestTaskServiceGet(t *testing.T) {
	t.Parallel()

	svc, taskStore, _, _ := newTaskServiceFixture(t)
	task, err := domain.NewTask("Prepare sprint review", "", "sara", "", "", nil, nil, uuid.New())
	require.NoError(t, err)
	taskStore.Tasks[task.ID] = task

	got, err := svc.Get(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, got.ID)

	_, err = svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}
