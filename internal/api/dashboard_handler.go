package api

import (
	"log/slog"
	"net/http"

	"github.com/herobusana/tasktracker-api/internal/api/shared"
	"github.com/herobusana/tasktracker-api/internal/service"
)

// DashboardHandler handles dashboard-related HTTP requests.
type DashboardHandler struct {
	dashboardService service.DashboardService
	logger           *slog.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService service.DashboardService, log *slog.Logger) *DashboardHandler {
	if log == nil {
		log = slog.Default()
	}

	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           log.With(slog.String("component", "dashboard_handler")),
	}
}

// GetStatistics handles GET /dashboard/statistics requests, serving the
// status counters, per-assignee breakdown, and recent activity feed.
func (h *DashboardHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboardService.Summary(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute dashboard statistics")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, summary)
}
