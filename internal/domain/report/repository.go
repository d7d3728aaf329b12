package report

import (
	"context"
	"time"
)

// ReportRepository defines the interface for report data access
type ReportRepository interface {
	// ListAttendanceRows returns rows in [From, To] ordered by date then clock-in
	ListAttendanceRows(ctx context.Context, filter RowFilter) ([]AttendanceRow, error)

	// ListActiveInterns returns active interns for absence detection
	ListActiveInterns(ctx context.Context) ([]InternRef, error)

	// ListClockedInDays returns, per intern id, the set of dates with a clock-in
	ListClockedInDays(ctx context.Context, from, to time.Time) (map[string]map[string]struct{}, error)
}
