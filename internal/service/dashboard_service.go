package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/herobusana/tasktracker-api/internal/domain"
	"github.com/herobusana/tasktracker-api/internal/store"
)

// RecentActivityLimit bounds the recent-activity feed on the dashboard.
const RecentActivityLimit = 10

// AssigneeActivity is one row of the per-assignee dashboard breakdown.
// CompletionRate is the percentage of the assignee's tasks that are
// completed, 0 when the assignee has no tasks.
type AssigneeActivity struct {
	AssignedTo     string  `json:"assigned_to"`
	Total          int     `json:"total_tasks"`
	Completed      int     `json:"completed_tasks"`
	InProgress     int     `json:"ongoing_tasks"`
	CompletionRate float64 `json:"completion_rate"`
}

// DashboardSummary aggregates everything the dashboard endpoint serves:
// the status counters, the per-assignee breakdown, and the recent audit
// activity feed.
type DashboardSummary struct {
	Statistics       *store.StatusCounts    `json:"statistics"`
	TeamActivity     []*AssigneeActivity    `json:"team_activity"`
	RecentActivities []*domain.TaskActivity `json:"recent_activities"`
}

// DashboardService computes read-only summaries over tasks and their audit
// trail. It never mutates state. The three reads behind Summary are
// independent point-in-time snapshots; no cross-query consistency is
// guaranteed beyond the store's isolation level.
type DashboardService interface {
	Summary(ctx context.Context) (*DashboardSummary, error)
}

// DashboardServiceImpl implements the DashboardService interface.
type DashboardServiceImpl struct {
	dashboardStore store.DashboardStore
	logStore       store.TaskLogStore
	logger         *slog.Logger
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	dashboardStore store.DashboardStore,
	logStore store.TaskLogStore,
	logger *slog.Logger,
) *DashboardServiceImpl {
	return &DashboardServiceImpl{
		dashboardStore: dashboardStore,
		logStore:       logStore,
		logger:         logger.With("component", "dashboard_service"),
	}
}

// Ensure DashboardServiceImpl implements DashboardService interface
var _ DashboardService = (*DashboardServiceImpl)(nil)

// Summary assembles the dashboard payload.
func (s *DashboardServiceImpl) Summary(ctx context.Context) (*DashboardSummary, error) {
	counts, err := s.dashboardStore.StatusCounts(ctx)
	if err != nil {
		s.logger.Error("failed to compute status counts", "error", err)
		return nil, fmt.Errorf("failed to compute status counts: %w", err)
	}

	teamCounts, err := s.dashboardStore.TeamActivity(ctx)
	if err != nil {
		s.logger.Error("failed to compute team activity", "error", err)
		return nil, fmt.Errorf("failed to compute team activity: %w", err)
	}

	recent, err := s.logStore.ListRecent(ctx, RecentActivityLimit)
	if err != nil {
		s.logger.Error("failed to list recent activity", "error", err)
		return nil, fmt.Errorf("failed to list recent activity: %w", err)
	}

	summary := &DashboardSummary{
		Statistics:       counts,
		TeamActivity:     make([]*AssigneeActivity, 0, len(teamCounts)),
		RecentActivities: recent,
	}

	for _, row := range teamCounts {
		summary.TeamActivity = append(summary.TeamActivity, &AssigneeActivity{
			AssignedTo:     row.AssignedTo,
			Total:          row.Total,
			Completed:      row.Completed,
			InProgress:     row.InProgress,
			CompletionRate: completionRate(row.Completed, row.Total),
		})
	}

	s.logger.Debug("dashboard summary computed",
		"total_tasks", counts.Total,
		"assignees", len(summary.TeamActivity),
		"recent_activities", len(recent))

	return summary, nil
}

// completionRate returns completed/total as a percentage, guarding against
// division by zero for assignees with no tasks.
func completionRate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}
