package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/herobusana/tasktracker-api/internal/domain"
	"github.com/herobusana/tasktracker-api/internal/store"
)

// PostgresTaskLogStore implements the store.TaskLogStore interface
// using a PostgreSQL database as the storage backend. The trail is
// append-only: this store never issues UPDATE or standalone DELETE
// statements against task_logs.
type PostgresTaskLogStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskLogStore creates a new PostgreSQL implementation of the TaskLogStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskLogStore(db store.DBTX, logger *slog.Logger) *PostgresTaskLogStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskLogStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_log_store")),
	}
}

// Ensure PostgresTaskLogStore implements store.TaskLogStore interface
var _ store.TaskLogStore = (*PostgresTaskLogStore)(nil)

// Append implements store.TaskLogStore.Append
func (s *PostgresTaskLogStore) Append(ctx context.Context, log *domain.TaskLog) error {
	if err := log.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO task_logs (id, task_id, old_status, new_status, changed_by, change_reason, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	var oldStatus *string
	if log.OldStatus != nil {
		v := string(*log.OldStatus)
		oldStatus = &v
	}

	_, err := s.db.ExecContext(ctx, query,
		log.ID,
		log.TaskID,
		oldStatus,
		log.NewStatus,
		log.ChangedBy,
		log.ChangeReason,
		log.ChangedAt,
	)
	if err != nil {
		s.logger.Error("failed to append task log",
			"error", err,
			"task_id", log.TaskID,
			"new_status", log.NewStatus)
		return fmt.Errorf("failed to append task log: %w", err)
	}

	return nil
}

// ListByTask implements store.TaskLogStore.ListByTask
// Records are returned newest first. An unknown task yields an empty slice.
func (s *PostgresTaskLogStore) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.TaskLog, error) {
	query := `
		SELECT id, task_id, old_status, new_status, changed_by, change_reason, changed_at
		FROM task_logs
		WHERE task_id = $1
		ORDER BY changed_at DESC, id DESC
	`

	rows, err := s.db.QueryContext(ctx, query, taskID)
	if err != nil {
		s.logger.Error("failed to query task logs", "error", err, "task_id", taskID)
		return nil, fmt.Errorf("failed to query task logs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	logs := make([]*domain.TaskLog, 0)
	for rows.Next() {
		log, err := scanTaskLog(rows)
		if err != nil {
			s.logger.Error("failed to scan task log row", "error", err, "task_id", taskID)
			return nil, fmt.Errorf("failed to scan task log row: %w", err)
		}
		logs = append(logs, log)
	}

	if err := rows.Err(); err != nil {
		s.logger.Error("error iterating task log rows", "error", err, "task_id", taskID)
		return nil, fmt.Errorf("error iterating task log rows: %w", err)
	}

	return logs, nil
}

// ListRecent implements store.TaskLogStore.ListRecent
// The actor join is an outer join: the user may have been deleted since the
// change, in which case the actor name comes back empty.
func (s *PostgresTaskLogStore) ListRecent(ctx context.Context, limit int) ([]*domain.TaskActivity, error) {
	query := `
		SELECT l.id, l.task_id, t.title, l.old_status, l.new_status,
			COALESCE(u.full_name, ''), COALESCE(l.change_reason, ''), l.changed_at
		FROM task_logs l
		JOIN tasks t ON t.id = l.task_id
		LEFT JOIN users u ON u.id = l.changed_by
		ORDER BY l.changed_at DESC, l.id DESC
		LIMIT $1
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		s.logger.Error("failed to query recent activity", "error", err, "limit", limit)
		return nil, fmt.Errorf("failed to query recent activity: %w", err)
	}
	defer func() { _ = rows.Close() }()

	activities := make([]*domain.TaskActivity, 0, limit)
	for rows.Next() {
		var activity domain.TaskActivity
		var oldStatus sql.NullString

		err := rows.Scan(
			&activity.LogID,
			&activity.TaskID,
			&activity.TaskTitle,
			&oldStatus,
			&activity.NewStatus,
			&activity.ActorName,
			&activity.Reason,
			&activity.ChangedAt,
		)
		if err != nil {
			s.logger.Error("failed to scan activity row", "error", err)
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}

		if oldStatus.Valid {
			v := domain.TaskStatus(oldStatus.String)
			activity.OldStatus = &v
		}

		activities = append(activities, &activity)
	}

	if err := rows.Err(); err != nil {
		s.logger.Error("error iterating activity rows", "error", err)
		return nil, fmt.Errorf("error iterating activity rows: %w", err)
	}

	return activities, nil
}

// WithTx implements store.TaskLogStore.WithTx
func (s *PostgresTaskLogStore) WithTx(tx *sql.Tx) store.TaskLogStore {
	return &PostgresTaskLogStore{
		db:     tx,
		logger: s.logger,
	}
}

func scanTaskLog(row rowScanner) (*domain.TaskLog, error) {
	var log domain.TaskLog
	var oldStatus sql.NullString
	var changedBy uuid.NullUUID
	var reason sql.NullString

	err := row.Scan(
		&log.ID,
		&log.TaskID,
		&oldStatus,
		&log.NewStatus,
		&changedBy,
		&reason,
		&log.ChangedAt,
	)
	if err != nil {
		return nil, err
	}

	if oldStatus.Valid {
		v := domain.TaskStatus(oldStatus.String)
		log.OldStatus = &v
	}
	if changedBy.Valid {
		log.ChangedBy = &changedBy.UUID
	}
	log.ChangeReason = reason.String

	return &log, nil
}
