package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herobusana/tasktracker-api/internal/domain"
	"github.com/herobusana/tasktracker-api/internal/mocks"
	"github.com/herobusana/tasktracker-api/internal/service"
	"github.com/herobusana/tasktracker-api/internal/store"
)

func TestGetStatistics(t *testing.T) {
	t.Parallel()

	t.Run("returns full dashboard payload", func(t *testing.T) {
		t.Parallel()

		summary := &service.DashboardSummary{
			Statistics: &store.StatusCounts{
				Total:      5,
				NotStarted: 1,
				InProgress: 2,
				Completed:  2,
				Overdue:    1,
			},
			TeamActivity: []*service.AssigneeActivity{
				{AssignedTo: "sara", Total: 4, Completed: 2, InProgress: 1, CompletionRate: 50},
			},
			RecentActivities: []*domain.TaskActivity{
				{
					LogID:     uuid.New(),
					TaskID:    uuid.New(),
					TaskTitle: "Prepare sprint review",
					NewStatus: domain.TaskStatusCompleted,
					ActorName: "Sara Lim",
					Reason:    "All review items resolved",
				},
			},
		}

		handler := NewDashboardHandler(&mocks.MockDashboardService{Result: summary}, testLogger())

		rr := httptest.NewRecorder()
		handler.GetStatistics(rr, httptest.NewRequest(http.MethodGet, "/api/dashboard/statistics", nil))

		require.Equal(t, http.StatusOK, rr.Code)

		var payload map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload))
		assert.Contains(t, payload, "statistics")
		assert.Contains(t, payload, "team_activity")
		assert.Contains(t, payload, "recent_activities")

		assert.Contains(t, rr.Body.String(), `"total_tasks":5`)
		assert.Contains(t, rr.Body.String(), `"completion_rate":50`)
		assert.Contains(t, rr.Body.String(), "Prepare sprint review")
	})

	t.Run("service failure yields 500", func(t *testing.T) {
		t.Parallel()

		handler := NewDashboardHandler(&mocks.MockDashboardService{Err: errors.New("query failed")}, testLogger())

		rr := httptest.NewRecorder()
		handler.GetStatistics(rr, httptest.NewRequest(http.MethodGet, "/api/dashboard/statistics", nil))

		require.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "query failed")
	})
}
