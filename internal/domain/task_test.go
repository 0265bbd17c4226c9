package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewTask(t *testing.T) {
	creator := uuid.New()

	task, err := NewTask("Ship release", "Cut the 2.4 release", "dina", TaskStatusInProgress, "High", nil, nil, creator)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if task.Status != TaskStatusInProgress {
		t.Errorf("Expected status %s, got %s", TaskStatusInProgress, task.Status)
	}

	if task.Priority != "High" {
		t.Errorf("Expected priority High, got %s", task.Priority)
	}

	if task.CreatedBy == nil || *task.CreatedBy != creator {
		t.Errorf("Expected created_by %s, got %v", creator, task.CreatedBy)
	}

	if task.CompletedDate != nil {
		t.Error("Expected nil CompletedDate on a new task")
	}

	if task.CreatedAt.IsZero() || task.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}
}

func TestNewTaskDefaults(t *testing.T) {
	task, err := NewTask("Write docs", "", "omar", "", "", nil, nil, uuid.New())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if task.Status != TaskStatusNotStarted {
		t.Errorf("Expected default status %s, got %s", TaskStatusNotStarted, task.Status)
	}

	if task.Priority != DefaultTaskPriority {
		t.Errorf("Expected default priority %s, got %s", DefaultTaskPriority, task.Priority)
	}
}

func TestNewTaskValidation(t *testing.T) {
	creator := uuid.New()

	_, err := NewTask("", "", "omar", "", "", nil, nil, creator)
	if !errors.Is(err, ErrEmptyTaskTitle) {
		t.Errorf("Expected error %v, got %v", ErrEmptyTaskTitle, err)
	}

	_, err = NewTask("Write docs", "", "", "", "", nil, nil, creator)
	if !errors.Is(err, ErrEmptyTaskAssignee) {
		t.Errorf("Expected error %v, got %v", ErrEmptyTaskAssignee, err)
	}

	_, err = NewTask("Write docs", "", "omar", TaskStatus("Done"), "", nil, nil, creator)
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("Expected error %v, got %v", ErrInvalidStatus, err)
	}
}

func TestTaskStatusIsValid(t *testing.T) {
	for _, status := range []TaskStatus{TaskStatusNotStarted, TaskStatusInProgress, TaskStatusCompleted} {
		if !status.IsValid() {
			t.Errorf("Expected %s to be valid", status)
		}
	}

	for _, status := range []TaskStatus{"", "Done", "not_started", "COMPLETED"} {
		if status.IsValid() {
			t.Errorf("Expected %q to be invalid", status)
		}
	}
}

func TestTaskApply(t *testing.T) {
	task, err := NewTask("Fix login bug", "", "sara", TaskStatusNotStarted, "", nil, nil, uuid.New())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	newTitle := "Fix login redirect bug"
	newStatus := TaskStatusInProgress

	oldStatus, changed := task.Apply(TaskUpdate{
		Title:  &newTitle,
		Status: &newStatus,
	})

	if oldStatus != TaskStatusNotStarted {
		t.Errorf("Expected old status %s, got %s", TaskStatusNotStarted, oldStatus)
	}
	if !changed {
		t.Error("Expected status change to be reported")
	}
	if task.Title != newTitle {
		t.Errorf("Expected title %q, got %q", newTitle, task.Title)
	}
	if task.Status != TaskStatusInProgress {
		t.Errorf("Expected status %s, got %s", TaskStatusInProgress, task.Status)
	}
}

func TestTaskApplyNoStatusChange(t *testing.T) {
	task, err := NewTask("Fix login bug", "", "sara", TaskStatusInProgress, "", nil, nil, uuid.New())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	newPriority := "High"
	sameStatus := TaskStatusInProgress

	_, changed := task.Apply(TaskUpdate{
		Priority: &newPriority,
		Status:   &sameStatus,
	})

	if changed {
		t.Error("Expected no status change when status is unchanged")
	}
	if task.Priority != "High" {
		t.Errorf("Expected priority High, got %s", task.Priority)
	}
}

func TestTaskApplyCompletedDateLatch(t *testing.T) {
	task, err := NewTask("Fix login bug", "", "sara", TaskStatusInProgress, "", nil, nil, uuid.New())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// First transition into Completed sets the completion date.
	completed := TaskStatusCompleted
	task.Apply(TaskUpdate{Status: &completed})

	if task.CompletedDate == nil {
		t.Fatal("Expected CompletedDate to be set on completion")
	}
	firstCompleted := *task.CompletedDate

	// Reopening the task must not clear the completion date.
	reopened := TaskStatusInProgress
	task.Apply(TaskUpdate{Status: &reopened})

	if task.CompletedDate == nil {
		t.Fatal("Expected CompletedDate to survive reopening")
	}

	// Completing again must keep the original completion date.
	task.Apply(TaskUpdate{Status: &completed})

	if !task.CompletedDate.Equal(firstCompleted) {
		t.Errorf("Expected CompletedDate %v to be latched, got %v", firstCompleted, *task.CompletedDate)
	}
}

func TestTaskIsOverdue(t *testing.T) {
	now := time.Now().UTC()
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	task := Task{Status: TaskStatusInProgress}

	if task.IsOverdue(now) {
		t.Error("Expected task without due date not to be overdue")
	}

	task.DueDate = &yesterday
	if !task.IsOverdue(now) {
		t.Error("Expected task past its due date to be overdue")
	}

	task.DueDate = &tomorrow
	if task.IsOverdue(now) {
		t.Error("Expected task before its due date not to be overdue")
	}

	task.DueDate = &yesterday
	task.Status = TaskStatusCompleted
	if task.IsOverdue(now) {
		t.Error("Expected completed task not to be overdue")
	}
}
