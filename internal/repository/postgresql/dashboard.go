package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/dashboard"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

func (r *dashboardRepositoryImpl) count(ctx context.Context, what, query string, args ...interface{}) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var n int64
	if err := q.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", what, err)
	}
	return n, nil
}

func (r *dashboardRepositoryImpl) CountActiveInterns(ctx context.Context) (int64, error) {
	return r.count(ctx, "active interns", `SELECT COUNT(*) FROM interns WHERE is_active = TRUE`)
}

func (r *dashboardRepositoryImpl) CountClockedIn(ctx context.Context, date time.Time) (int64, error) {
	return r.count(ctx, "clocked in",
		`SELECT COUNT(*) FROM attendance WHERE date = $1 AND clock_in_time IS NOT NULL`,
		date.Format("2006-01-02"))
}

func (r *dashboardRepositoryImpl) CountPendingAttendance(ctx context.Context) (int64, error) {
	return r.count(ctx, "pending attendance",
		`SELECT COUNT(*) FROM attendance WHERE status = 'pending' AND clock_out_time IS NOT NULL`)
}

func (r *dashboardRepositoryImpl) CountPendingLeaves(ctx context.Context) (int64, error) {
	return r.count(ctx, "pending leaves", `SELECT COUNT(*) FROM leaves WHERE status = 'pending'`)
}

// RecentActivity returns the latest clock events across all interns
func (r *dashboardRepositoryImpl) RecentActivity(ctx context.Context, limit int) ([]dashboard.ActivityRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, i.full_name, a.clock_in_time, a.clock_out_time, a.status, a.is_late, a.location_address
		FROM attendance a
		JOIN interns i ON i.id = a.intern_id
		WHERE a.clock_in_time IS NOT NULL
		ORDER BY GREATEST(a.clock_in_time, COALESCE(a.clock_out_time, a.clock_in_time)) DESC
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent activity: %w", err)
	}
	defer rows.Close()

	var records []dashboard.ActivityRecord
	for rows.Next() {
		var rec dashboard.ActivityRecord
		if err := rows.Scan(&rec.AttendanceID, &rec.InternName, &rec.ClockInTime, &rec.ClockOutTime,
			&rec.Status, &rec.IsLate, &rec.LocationAddress); err != nil {
			return nil, fmt.Errorf("failed to scan recent activity: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
