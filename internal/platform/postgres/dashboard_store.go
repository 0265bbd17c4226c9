package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/herobusana/tasktracker-api/internal/store"
)

// PostgresDashboardStore implements the store.DashboardStore interface.
// All queries are read-only aggregates over the tasks table.
type PostgresDashboardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDashboardStore creates a new PostgreSQL implementation of the DashboardStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresDashboardStore(db store.DBTX, logger *slog.Logger) *PostgresDashboardStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDashboardStore{
		db:     db,
		logger: logger.With(slog.String("component", "dashboard_store")),
	}
}

// Ensure PostgresDashboardStore implements store.DashboardStore interface
var _ store.DashboardStore = (*PostgresDashboardStore)(nil)

// StatusCounts implements store.DashboardStore.StatusCounts
// A single scan over tasks produces every counter; the overdue predicate
// explicitly excludes completed tasks whatever their due date.
func (s *PostgresDashboardStore) StatusCounts(ctx context.Context) (*store.StatusCounts, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'Not_Started'),
			COUNT(*) FILTER (WHERE status = 'In_Progress'),
			COUNT(*) FILTER (WHERE status = 'Completed'),
			COUNT(*) FILTER (WHERE due_date < CURRENT_DATE AND status <> 'Completed')
		FROM tasks
	`

	var counts store.StatusCounts
	err := s.db.QueryRowContext(ctx, query).Scan(
		&counts.Total,
		&counts.NotStarted,
		&counts.InProgress,
		&counts.Completed,
		&counts.Overdue,
	)
	if err != nil {
		s.logger.Error("failed to query status counts", "error", err)
		return nil, fmt.Errorf("failed to query status counts: %w", err)
	}

	return &counts, nil
}

// TeamActivity implements store.DashboardStore.TeamActivity
func (s *PostgresDashboardStore) TeamActivity(ctx context.Context) ([]*store.AssigneeCounts, error) {
	query := `
		SELECT
			assigned_to,
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'Completed'),
			COUNT(*) FILTER (WHERE status = 'In_Progress')
		FROM tasks
		GROUP BY assigned_to
		ORDER BY COUNT(*) FILTER (WHERE status = 'Completed') DESC, assigned_to ASC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		s.logger.Error("failed to query team activity", "error", err)
		return nil, fmt.Errorf("failed to query team activity: %w", err)
	}
	defer func() { _ = rows.Close() }()

	activity := make([]*store.AssigneeCounts, 0)
	for rows.Next() {
		var counts store.AssigneeCounts
		err := rows.Scan(
			&counts.AssignedTo,
			&counts.Total,
			&counts.Completed,
			&counts.InProgress,
		)
		if err != nil {
			s.logger.Error("failed to scan team activity row", "error", err)
			return nil, fmt.Errorf("failed to scan team activity row: %w", err)
		}
		activity = append(activity, &counts)
	}

	if err := rows.Err(); err != nil {
		s.logger.Error("error iterating team activity rows", "error", err)
		return nil, fmt.Errorf("error iterating team activity rows: %w", err)
	}

	return activity, nil
}
