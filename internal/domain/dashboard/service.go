package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetStats returns today's counters, gathered concurrently
	GetStats(ctx context.Context) (StatsResponse, error)
}
