package dashboard

import (
	"context"
	"time"
)

// ActivityRecord is the latest clock event of an attendance row.
type ActivityRecord struct {
	AttendanceID    string
	InternName      string
	ClockInTime     *time.Time
	ClockOutTime    *time.Time
	Status          string
	IsLate          bool
	LocationAddress *string
}

// DashboardRepository defines the interface for dashboard data access
type DashboardRepository interface {
	CountActiveInterns(ctx context.Context) (int64, error)

	// CountClockedIn counts records on date with a clock-in
	CountClockedIn(ctx context.Context, date time.Time) (int64, error)

	CountPendingAttendance(ctx context.Context) (int64, error)
	CountPendingLeaves(ctx context.Context) (int64, error)

	// RecentActivity returns the latest updated records
	RecentActivity(ctx context.Context, limit int) ([]ActivityRecord, error)
}
