package store

import (
	"context"
)

// StatusCounts holds the per-status task counts for the dashboard overview.
// Overdue counts tasks whose due date lies strictly before the current date
// and whose status is not Completed, regardless of anything else.
type StatusCounts struct {
	Total      int `json:"total_tasks"`
	NotStarted int `json:"not_started"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Overdue    int `json:"overdue"`
}

// AssigneeCounts holds the raw per-assignee task counts. The completion rate
// is derived from these counts by the dashboard service, not by the store.
type AssigneeCounts struct {
	AssignedTo string
	Total      int
	Completed  int
	InProgress int
}

// DashboardStore defines the read-only aggregate queries backing the
// dashboard. Each query is an independent point-in-time snapshot; no
// cross-query consistency is guaranteed beyond the store's isolation level.
type DashboardStore interface {
	// StatusCounts computes the task counts by status plus the overdue count.
	StatusCounts(ctx context.Context) (*StatusCounts, error)

	// TeamActivity computes per-assignee task counts, grouped by assignee
	// and ordered by completed count descending.
	TeamActivity(ctx context.Context) ([]*AssigneeCounts, error)
}
