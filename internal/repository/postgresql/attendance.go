package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/attendance"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

const attendanceColumns = `
	a.id, a.intern_id, a.date, a.clock_in_time, a.clock_out_time,
	a.clock_in_lat, a.clock_in_lng, a.clock_out_lat, a.clock_out_lng,
	a.clock_in_photo, a.clock_out_photo, a.location_address, a.geofence_location_id,
	a.clock_in_method, a.break_start, a.break_end, a.total_hours::float8,
	a.is_late, a.is_undertime, a.is_overtime, a.status, a.notes,
	a.approved_by, a.approved_at, a.rejection_reason, a.created_at, a.updated_at,
	i.full_name, i.student_id, i.user_id, g.name
`

const attendanceFrom = `
	FROM attendance a
	JOIN interns i ON i.id = a.intern_id
	LEFT JOIN geofence_locations g ON g.id = a.geofence_location_id
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.InternID, &att.Date, &att.ClockInTime, &att.ClockOutTime,
		&att.ClockInLatitude, &att.ClockInLongitude, &att.ClockOutLatitude, &att.ClockOutLongitude,
		&att.ClockInPhoto, &att.ClockOutPhoto, &att.LocationAddress, &att.GeofenceLocationID,
		&att.ClockInMethod, &att.BreakStart, &att.BreakEnd, &att.TotalHours,
		&att.IsLate, &att.IsUndertime, &att.IsOvertime, &att.Status, &att.Notes,
		&att.ApprovedBy, &att.ApprovedAt, &att.RejectionReason, &att.CreatedAt, &att.UpdatedAt,
		&att.InternName, &att.InternStudentID, &att.InternUserID, &att.GeofenceName,
	)
	return att, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance (
			intern_id, date, clock_in_time, clock_in_lat, clock_in_lng, clock_in_photo,
			location_address, geofence_location_id, clock_in_method, is_late, status, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAttendance.InternID,
		newAttendance.Date,
		newAttendance.ClockInTime,
		newAttendance.ClockInLatitude,
		newAttendance.ClockInLongitude,
		newAttendance.ClockInPhoto,
		newAttendance.LocationAddress,
		newAttendance.GeofenceLocationID,
		newAttendance.ClockInMethod,
		newAttendance.IsLate,
		newAttendance.Status,
		newAttendance.Notes,
	).Scan(&newAttendance.ID, &newAttendance.CreatedAt, &newAttendance.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return attendance.Attendance{}, attendance.ErrDuplicateAttendance
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	return a.getOne(ctx, "", "a.id = $1", id)
}

// LockByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) LockByID(ctx context.Context, id string) (attendance.Attendance, error) {
	return a.getOne(ctx, "FOR UPDATE OF a", "a.id = $1", id)
}

// GetByInternAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByInternAndDate(ctx context.Context, internID string, date time.Time) (*attendance.Attendance, error) {
	return a.getDay(ctx, "", internID, date)
}

// LockByInternAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) LockByInternAndDate(ctx context.Context, internID string, date time.Time) (*attendance.Attendance, error) {
	return a.getDay(ctx, "FOR UPDATE OF a", internID, date)
}

func (a *attendanceRepository) getDay(ctx context.Context, lock string, internID string, date time.Time) (*attendance.Attendance, error) {
	att, err := a.getOne(ctx, lock, "a.intern_id = $1 AND a.date = $2", internID, date.Format("2006-01-02"))
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return nil, nil // No existing attendance found
		}
		return nil, err
	}
	return &att, nil
}

func (a *attendanceRepository) getOne(ctx context.Context, lock string, where string, args ...interface{}) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + attendanceFrom + ` WHERE ` + where + ` ` + lock

	att, err := scanAttendance(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	return att, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance SET
			clock_in_time = $1, clock_out_time = $2,
			clock_out_lat = $3, clock_out_lng = $4, clock_out_photo = $5,
			location_address = $6, geofence_location_id = $7,
			break_start = $8, break_end = $9, total_hours = $10,
			is_late = $11, is_undertime = $12, is_overtime = $13,
			status = $14, notes = $15, approved_by = $16, approved_at = $17,
			rejection_reason = $18, updated_at = NOW()
		WHERE id = $19
	`

	tag, err := q.Exec(ctx, query,
		att.ClockInTime, att.ClockOutTime,
		att.ClockOutLatitude, att.ClockOutLongitude, att.ClockOutPhoto,
		att.LocationAddress, att.GeofenceLocationID,
		att.BreakStart, att.BreakEnd, att.TotalHours,
		att.IsLate, att.IsUndertime, att.IsOvertime,
		att.Status, att.Notes, att.ApprovedBy, att.ApprovedAt,
		att.RejectionReason, att.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.InternID != nil && *filter.InternID != "" {
		baseWhere += fmt.Sprintf(" AND a.intern_id = $%d", argIdx)
		args = append(args, *filter.InternID)
		argIdx++
	}

	// Intern name filter (search)
	if filter.InternName != nil && *filter.InternName != "" {
		baseWhere += fmt.Sprintf(" AND i.full_name ILIKE $%d", argIdx)
		args = append(args, "%"+*filter.InternName+"%")
		argIdx++
	}

	if filter.Date != nil && *filter.Date != "" {
		baseWhere += fmt.Sprintf(" AND a.date = $%d", argIdx)
		args = append(args, *filter.Date)
		argIdx++
	}

	// Date range filters
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.FlaggedOnly {
		baseWhere += " AND (a.is_late OR a.is_undertime OR a.is_overtime)"
	}

	countQuery := `SELECT COUNT(*)` + attendanceFrom + ` WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance: %w", err)
	}

	// Build ORDER BY
	orderByField := "a.date"
	switch filter.SortBy {
	case "intern_name":
		orderByField = "i.full_name"
	case "clock_in_time":
		orderByField = "a.clock_in_time"
	case "clock_out_time":
		orderByField = "a.clock_out_time"
	case "status":
		orderByField = "a.status"
	case "total_hours":
		orderByField = "a.total_hours"
	}
	sortOrder := "DESC"
	if strings.ToLower(filter.SortOrder) == "asc" {
		sortOrder = "ASC"
	}

	limit, offset := paginate(filter.Page, filter.Limit)
	selectQuery := fmt.Sprintf(`SELECT %s %s WHERE %s ORDER BY %s %s NULLS LAST, a.created_at DESC LIMIT $%d OFFSET $%d`,
		attendanceColumns, attendanceFrom, baseWhere, orderByField, sortOrder, argIdx, argIdx+1)
	args = append(args, limit, offset)

	records, err := a.query(ctx, q, selectQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// ListOpenSessionsBefore implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListOpenSessionsBefore(ctx context.Context, date time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + attendanceFrom + `
		WHERE a.date < $1
		  AND a.clock_in_time IS NOT NULL
		  AND a.clock_out_time IS NULL
		ORDER BY a.date ASC`
	return a.query(ctx, q, query, date.Format("2006-01-02"))
}

func (a *attendanceRepository) query(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]attendance.Attendance, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	return records, rows.Err()
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
