package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herobusana/tasktracker-api/internal/domain"
	"github.com/herobusana/tasktracker-api/internal/mocks"
	"github.com/herobusana/tasktracker-api/internal/service"
	"github.com/herobusana/tasktracker-api/internal/store"
)

func TestDashboardServiceSummary(t *testing.T) {
	t.Parallel()

	dashboardStore := &mocks.MockDashboardStore{
		Counts: &store.StatusCounts{
			Total:      7,
			NotStarted: 2,
			InProgress: 3,
			Completed:  2,
			Overdue:    1,
		},
		Team: []*store.AssigneeCounts{
			{AssignedTo: "sara", Total: 4, Completed: 2, InProgress: 1},
			{AssignedTo: "omar", Total: 3, Completed: 0, InProgress: 2},
		},
	}

	logStore := mocks.NewMockTaskLogStore()
	logStore.Activities = []*domain.TaskActivity{
		{
			LogID:     uuid.New(),
			TaskID:    uuid.New(),
			TaskTitle: "Prepare sprint review",
			NewStatus: domain.TaskStatusInProgress,
			ActorName: "Sara Lim",
		},
	}

	svc := service.NewDashboardService(dashboardStore, logStore, discardLogger())

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.Equal(t, 7, summary.Statistics.Total)
	assert.Equal(t, 1, summary.Statistics.Overdue)

	require.Len(t, summary.TeamActivity, 2)
	assert.Equal(t, "sara", summary.TeamActivity[0].AssignedTo)
	assert.InDelta(t, 50.0, summary.TeamActivity[0].CompletionRate, 0.001)
	assert.InDelta(t, 0.0, summary.TeamActivity[1].CompletionRate, 0.001)

	require.Len(t, summary.RecentActivities, 1)
	assert.Equal(t, "Prepare sprint review", summary.RecentActivities[0].TaskTitle)
}

func TestDashboardServiceSummaryEmpty(t *testing.T) {
	t.Parallel()

	svc := service.NewDashboardService(&mocks.MockDashboardStore{}, mocks.NewMockTaskLogStore(), discardLogger())

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Statistics.Total)
	assert.Empty(t, summary.TeamActivity)
	assert.Empty(t, summary.RecentActivities)
}

func TestDashboardServiceSummaryZeroTotalAssignee(t *testing.T) {
	t.Parallel()

	// An assignee row with zero tasks must not divide by zero.
	dashboardStore := &mocks.MockDashboardStore{
		Counts: &store.StatusCounts{},
		Team: []*store.AssigneeCounts{
			{AssignedTo: "ghost", Total: 0, Completed: 0},
		},
	}

	svc := service.NewDashboardService(dashboardStore, mocks.NewMockTaskLogStore(), discardLogger())

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.Len(t, summary.TeamActivity, 1)
	assert.Zero(t, summary.TeamActivity[0].CompletionRate)
}

func TestDashboardServiceSummaryStoreError(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("query failed")
	svc := service.NewDashboardService(&mocks.MockDashboardStore{Err: storeErr}, mocks.NewMockTaskLogStore(), discardLogger())

	_, err := svc.Summary(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, storeErr)
}
