package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/report"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/database"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

// ListAttendanceRows reads attendance joined with interns for a date range
func (r *reportRepositoryImpl) ListAttendanceRows(ctx context.Context, filter report.RowFilter) ([]report.AttendanceRow, error) {
	q := GetQuerier(ctx, r.db)

	where := "a.date >= $1 AND a.date <= $2"
	args := []interface{}{filter.From.Format("2006-01-02"), filter.To.Format("2006-01-02")}
	argIdx := 3

	if filter.InternID != nil && *filter.InternID != "" {
		where += fmt.Sprintf(" AND a.intern_id = $%d", argIdx)
		args = append(args, *filter.InternID)
		argIdx++
	}
	if filter.ClockedInOnly {
		where += " AND a.clock_in_time IS NOT NULL"
	}
	if filter.ApprovedOnly {
		where += " AND a.status = 'approved'"
	}
	if filter.LateOnly {
		where += " AND a.is_late = TRUE"
	}

	query := `
		SELECT
			a.id, a.intern_id, i.full_name, i.student_id, i.company_name,
			a.date, a.clock_in_time, a.clock_out_time, a.total_hours::float8,
			a.status, a.is_late, a.is_undertime, a.is_overtime, a.location_address
		FROM attendance a
		JOIN interns i ON i.id = a.intern_id
		WHERE ` + where + `
		ORDER BY a.date ASC, a.clock_in_time ASC NULLS LAST
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query report rows: %w", err)
	}
	defer rows.Close()

	var result []report.AttendanceRow
	for rows.Next() {
		var row report.AttendanceRow
		if err := rows.Scan(
			&row.AttendanceID, &row.InternID, &row.InternName, &row.StudentID, &row.CompanyName,
			&row.Date, &row.ClockInTime, &row.ClockOutTime, &row.TotalHours,
			&row.Status, &row.IsLate, &row.IsUndertime, &row.IsOvertime, &row.LocationAddress,
		); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

// ListActiveInterns returns active interns ordered by name
func (r *reportRepositoryImpl) ListActiveInterns(ctx context.Context) ([]report.InternRef, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, full_name, student_id
		FROM interns
		WHERE is_active = TRUE
		ORDER BY full_name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query active interns: %w", err)
	}
	defer rows.Close()

	var interns []report.InternRef
	for rows.Next() {
		var ref report.InternRef
		if err := rows.Scan(&ref.ID, &ref.FullName, &ref.StudentID); err != nil {
			return nil, fmt.Errorf("failed to scan intern: %w", err)
		}
		interns = append(interns, ref)
	}

	return interns, rows.Err()
}

// ListClockedInDays returns intern id -> set of YYYY-MM-DD dates with a clock-in
func (r *reportRepositoryImpl) ListClockedInDays(ctx context.Context, from, to time.Time) (map[string]map[string]struct{}, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT intern_id, to_char(date, 'YYYY-MM-DD')
		FROM attendance
		WHERE date >= $1 AND date <= $2 AND clock_in_time IS NOT NULL
	`, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to query clocked-in days: %w", err)
	}
	defer rows.Close()

	days := make(map[string]map[string]struct{})
	for rows.Next() {
		var internID, date string
		if err := rows.Scan(&internID, &date); err != nil {
			return nil, fmt.Errorf("failed to scan clocked-in day: %w", err)
		}
		if days[internID] == nil {
			days[internID] = make(map[string]struct{})
		}
		days[internID][date] = struct{}{}
	}

	return days, rows.Err()
}
