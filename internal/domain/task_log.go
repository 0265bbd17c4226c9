package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common task log validation errors.
var (
	ErrEmptyLogTaskID    = errors.New("task log must reference a task")
	ErrEmptyLogNewStatus = errors.New("task log new status cannot be empty")
)

// TaskLog is an immutable audit record of one status transition for a task.
// The creation record carries a nil OldStatus; every subsequent record
// captures the transition from OldStatus to NewStatus. Records are never
// updated or deleted individually; they are removed only when their task is
// deleted.
type TaskLog struct {
	ID           uuid.UUID   `json:"id"`
	TaskID       uuid.UUID   `json:"task_id"`
	OldStatus    *TaskStatus `json:"old_status"`
	NewStatus    TaskStatus  `json:"new_status"`
	ChangedBy    *uuid.UUID  `json:"changed_by"`
	ChangeReason string      `json:"change_reason"`
	ChangedAt    time.Time   `json:"changed_at"`
}

// NewTaskLog creates an audit record for a status transition. When reason is
// empty a default description is generated from the transition itself.
func NewTaskLog(
	taskID uuid.UUID,
	oldStatus *TaskStatus,
	newStatus TaskStatus,
	changedBy uuid.UUID,
	reason string,
) (*TaskLog, error) {
	if reason == "" {
		reason = DefaultChangeReason(oldStatus, newStatus)
	}

	log := &TaskLog{
		ID:           uuid.New(),
		TaskID:       taskID,
		OldStatus:    oldStatus,
		NewStatus:    newStatus,
		ChangedBy:    &changedBy,
		ChangeReason: reason,
		ChangedAt:    time.Now().UTC(),
	}

	if err := log.Validate(); err != nil {
		return nil, err
	}

	return log, nil
}

// Validate checks if the TaskLog has valid data.
func (l *TaskLog) Validate() error {
	if l.TaskID == uuid.Nil {
		return ErrEmptyLogTaskID
	}

	if l.NewStatus == "" {
		return ErrEmptyLogNewStatus
	}

	if !l.NewStatus.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, l.NewStatus)
	}

	if l.OldStatus != nil && !l.OldStatus.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, *l.OldStatus)
	}

	return nil
}

// DefaultChangeReason builds the fallback change description used when the
// caller supplies no reason. The creation record (nil oldStatus) is described
// differently from a transition.
func DefaultChangeReason(oldStatus *TaskStatus, newStatus TaskStatus) string {
	if oldStatus == nil {
		return fmt.Sprintf("Task created with status %s", newStatus)
	}
	return fmt.Sprintf("Status changed from %s to %s", *oldStatus, newStatus)
}

// TaskActivity is a task log entry enriched with the task's title and the
// display name of the user who made the change. ActorName is empty when the
// user has since been deleted.
type TaskActivity struct {
	LogID     uuid.UUID   `json:"id"`
	TaskID    uuid.UUID   `json:"task_id"`
	TaskTitle string      `json:"task_title"`
	OldStatus *TaskStatus `json:"old_status"`
	NewStatus TaskStatus  `json:"new_status"`
	ActorName string      `json:"changed_by"`
	Reason    string      `json:"change_reason"`
	ChangedAt time.Time   `json:"changed_at"`
}
