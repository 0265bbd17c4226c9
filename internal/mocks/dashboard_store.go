package mocks

import (
	"context"

	"github.com/herobusana/tasktracker-api/internal/store"
)

// MockDashboardStore implements store.DashboardStore for testing
type MockDashboardStore struct {
	// Function fields for customizable behavior
	StatusCountsFn func(ctx context.Context) (*store.StatusCounts, error)
	TeamActivityFn func(ctx context.Context) ([]*store.AssigneeCounts, error)

	// Default values used when functions aren't explicitly defined
	Counts *store.StatusCounts
	Team   []*store.AssigneeCounts
	Err    error
}

// StatusCounts implements the DashboardStore interface
func (m *MockDashboardStore) StatusCounts(ctx context.Context) (*store.StatusCounts, error) {
	if m.StatusCountsFn != nil {
		return m.StatusCountsFn(ctx)
	}

	if m.Err != nil {
		return nil, m.Err
	}

	if m.Counts != nil {
		return m.Counts, nil
	}
	return &store.StatusCounts{}, nil
}

// TeamActivity implements the DashboardStore interface
func (m *MockDashboardStore) TeamActivity(ctx context.Context) ([]*store.AssigneeCounts, error) {
	if m.TeamActivityFn != nil {
		return m.TeamActivityFn(ctx)
	}

	if m.Err != nil {
		return nil, m.Err
	}
	return m.Team, nil
}
