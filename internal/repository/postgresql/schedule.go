package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/intern"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/schedule"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/database"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/evaluator"
)

type scheduleRepositoryImpl struct {
	db *database.DB
}

const scheduleSelect = `
	SELECT s.id, s.intern_id, s.day_of_week, s.start_time::text, s.end_time::text,
		   s.break_duration, s.is_active, s.created_at, s.updated_at, i.full_name
	FROM schedules s
	JOIN interns i ON i.id = s.intern_id
`

func scanSchedule(row pgx.Row) (schedule.Schedule, error) {
	var (
		s          schedule.Schedule
		start, end string
	)
	err := row.Scan(&s.ID, &s.InternID, &s.DayOfWeek, &start, &end,
		&s.BreakDuration, &s.IsActive, &s.CreatedAt, &s.UpdatedAt, &s.InternName)
	if err != nil {
		return schedule.Schedule{}, err
	}
	if s.StartTime, err = evaluator.ParseTimeOfDay(start); err != nil {
		return schedule.Schedule{}, err
	}
	if s.EndTime, err = evaluator.ParseTimeOfDay(end); err != nil {
		return schedule.Schedule{}, err
	}
	return s, nil
}

// Upsert implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) Upsert(ctx context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO schedules (intern_id, day_of_week, start_time, end_time, break_duration, is_active)
		VALUES ($1, $2, $3::time, $4::time, $5, $6)
		ON CONFLICT (intern_id, day_of_week) DO UPDATE
		SET start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			break_duration = EXCLUDED.break_duration,
			is_active = EXCLUDED.is_active,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		s.InternID, s.DayOfWeek, s.StartTime.String(), s.EndTime.String(), s.BreakDuration, s.IsActive,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return schedule.Schedule{}, intern.ErrInternNotFound
		}
		return schedule.Schedule{}, fmt.Errorf("failed to upsert schedule: %w", err)
	}
	return s, nil
}

// GetByID implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) GetByID(ctx context.Context, id string) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	s, err := scanSchedule(q.QueryRow(ctx, scheduleSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.Schedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.Schedule{}, fmt.Errorf("failed to get schedule: %w", err)
	}
	return s, nil
}

// GetActiveForDay implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) GetActiveForDay(ctx context.Context, internID string, day time.Weekday) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := scheduleSelect + ` WHERE s.intern_id = $1 AND s.day_of_week = $2 AND s.is_active = TRUE`
	s, err := scanSchedule(q.QueryRow(ctx, query, internID, int(day)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.Schedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.Schedule{}, fmt.Errorf("failed to get schedule for day: %w", err)
	}
	return s, nil
}

// ListByIntern implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) ListByIntern(ctx context.Context, internID string) ([]schedule.Schedule, error) {
	return r.list(ctx, scheduleSelect+` WHERE s.intern_id = $1 ORDER BY s.day_of_week`, internID)
}

// List implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) List(ctx context.Context) ([]schedule.Schedule, error) {
	return r.list(ctx, scheduleSelect+` ORDER BY i.full_name, s.day_of_week`)
}

func (r *scheduleRepositoryImpl) list(ctx context.Context, query string, args ...interface{}) ([]schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	defer rows.Close()

	var schedules []schedule.Schedule
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan schedule: %w", err)
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

// Update implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) Update(ctx context.Context, s schedule.Schedule) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE schedules
		SET day_of_week = $1, start_time = $2::time, end_time = $3::time,
			break_duration = $4, is_active = $5, updated_at = NOW()
		WHERE id = $6
	`
	tag, err := q.Exec(ctx, query, s.DayOfWeek, s.StartTime.String(), s.EndTime.String(), s.BreakDuration, s.IsActive, s.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return schedule.ErrScheduleExists
		}
		return fmt.Errorf("failed to update schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrScheduleNotFound
	}
	return nil
}

// Delete implements schedule.ScheduleRepository.
func (r *scheduleRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrScheduleNotFound
	}
	return nil
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepositoryImpl{db: db}
}
