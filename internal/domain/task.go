package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

// Valid task statuses. The underscore spelling is part of the wire format
// and the persisted representation, so it must not be changed casually.
const (
	TaskStatusNotStarted TaskStatus = "Not_Started"
	TaskStatusInProgress TaskStatus = "In_Progress"
	TaskStatusCompleted  TaskStatus = "Completed"
)

// DefaultTaskPriority is applied when a task is created without a priority.
// Priority is deliberately free text (teams use Low/Medium/High by convention),
// so unlike status it is not validated against a closed set.
const DefaultTaskPriority = "Medium"

// Common task validation errors.
var (
	ErrEmptyTaskID       = errors.New("task ID cannot be empty")
	ErrEmptyTaskTitle    = errors.New("task title cannot be empty")
	ErrEmptyTaskAssignee = errors.New("task assignee cannot be empty")
)

// IsValid reports whether s is one of the recognized task statuses.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusNotStarted, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// Task represents a unit of work assigned to a team member.
// AssignedTo is a free-text identifier, not a foreign key to User.
type Task struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	AssignedTo    string     `json:"assigned_to"`
	Status        TaskStatus `json:"status"`
	Priority      string     `json:"priority"`
	StartDate     *time.Time `json:"start_date"`
	DueDate       *time.Time `json:"due_date"`
	CompletedDate *time.Time `json:"completed_date"`
	CreatedBy     *uuid.UUID `json:"created_by"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// NewTask creates a new Task with the given fields, applying defaults for
// status and priority when they are unset. The creator becomes CreatedBy.
// Returns an error if validation fails.
func NewTask(
	title, description, assignedTo string,
	status TaskStatus,
	priority string,
	startDate, dueDate *time.Time,
	createdBy uuid.UUID,
) (*Task, error) {
	if status == "" {
		status = TaskStatusNotStarted
	}
	if priority == "" {
		priority = DefaultTaskPriority
	}

	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		AssignedTo:  assignedTo,
		Status:      status,
		Priority:    priority,
		StartDate:   startDate,
		DueDate:     dueDate,
		CreatedBy:   &createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.Title == "" {
		return ErrEmptyTaskTitle
	}

	if t.AssignedTo == "" {
		return ErrEmptyTaskAssignee
	}

	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}

	return nil
}

// TaskUpdate carries a partial update for a task. Nil fields keep the
// stored value; non-nil fields replace it.
type TaskUpdate struct {
	Title        *string
	Description  *string
	AssignedTo   *string
	Status       *TaskStatus
	Priority     *string
	StartDate    *time.Time
	DueDate      *time.Time
	ChangeReason *string
}

// Apply merges the update into the task and reports the previous status and
// whether the status changed. CompletedDate is set on the first transition
// into Completed and never cleared afterwards, even if the status later
// regresses. UpdatedAt is refreshed on every call.
func (t *Task) Apply(update TaskUpdate) (oldStatus TaskStatus, statusChanged bool) {
	oldStatus = t.Status

	if update.Title != nil {
		t.Title = *update.Title
	}
	if update.Description != nil {
		t.Description = *update.Description
	}
	if update.AssignedTo != nil {
		t.AssignedTo = *update.AssignedTo
	}
	if update.Status != nil {
		t.Status = *update.Status
	}
	if update.Priority != nil {
		t.Priority = *update.Priority
	}
	if update.StartDate != nil {
		t.StartDate = update.StartDate
	}
	if update.DueDate != nil {
		t.DueDate = update.DueDate
	}

	if t.Status == TaskStatusCompleted && t.CompletedDate == nil {
		now := time.Now().UTC()
		t.CompletedDate = &now
	}

	t.UpdatedAt = time.Now().UTC()

	return oldStatus, t.Status != oldStatus
}

// IsOverdue reports whether the task's due date lies strictly before the
// given reference time and the task has not been completed.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Status == TaskStatusCompleted {
		return false
	}
	return t.DueDate.Before(now)
}
