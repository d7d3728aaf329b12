package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/intern"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/database"
)

type internRepositoryImpl struct {
	db *database.DB
}

const internColumns = `
	i.id, i.user_id, i.student_id, i.full_name, i.school, i.course, i.year_level,
	i.phone, i.emergency_contact_name, i.emergency_contact_phone, i.required_hours,
	i.company_name, i.supervisor_name, i.supervisor_email, i.start_date, i.end_date,
	i.is_active, i.created_at, i.updated_at, u.email
`

func scanIntern(row pgx.Row) (intern.Intern, error) {
	var in intern.Intern
	err := row.Scan(
		&in.ID, &in.UserID, &in.StudentID, &in.FullName, &in.School, &in.Course, &in.YearLevel,
		&in.Phone, &in.EmergencyContactName, &in.EmergencyContactPhone, &in.RequiredHours,
		&in.CompanyName, &in.SupervisorName, &in.SupervisorEmail, &in.StartDate, &in.EndDate,
		&in.IsActive, &in.CreatedAt, &in.UpdatedAt, &in.Email,
	)
	return in, err
}

// Create implements intern.InternRepository.
func (r *internRepositoryImpl) Create(ctx context.Context, newIntern intern.Intern) (intern.Intern, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO interns (
			user_id, student_id, full_name, school, course, year_level, phone,
			emergency_contact_name, emergency_contact_phone, required_hours,
			company_name, supervisor_name, supervisor_email, start_date, end_date, is_active
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newIntern.UserID,
		newIntern.StudentID,
		newIntern.FullName,
		newIntern.School,
		newIntern.Course,
		newIntern.YearLevel,
		newIntern.Phone,
		newIntern.EmergencyContactName,
		newIntern.EmergencyContactPhone,
		newIntern.RequiredHours,
		newIntern.CompanyName,
		newIntern.SupervisorName,
		newIntern.SupervisorEmail,
		newIntern.StartDate,
		newIntern.EndDate,
		newIntern.IsActive,
	).Scan(&newIntern.ID, &newIntern.CreatedAt, &newIntern.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return intern.Intern{}, intern.ErrProfileAlreadyExists
		}
		return intern.Intern{}, fmt.Errorf("failed to create intern: %w", err)
	}

	return newIntern, nil
}

// GetByID implements intern.InternRepository.
func (r *internRepositoryImpl) GetByID(ctx context.Context, id string) (intern.Intern, error) {
	return r.getOne(ctx, "i.id = $1", id)
}

// GetByUserID implements intern.InternRepository.
func (r *internRepositoryImpl) GetByUserID(ctx context.Context, userID string) (intern.Intern, error) {
	return r.getOne(ctx, "i.user_id = $1", userID)
}

func (r *internRepositoryImpl) getOne(ctx context.Context, where string, arg any) (intern.Intern, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + internColumns + `
		FROM interns i
		JOIN users u ON u.id = i.user_id
		WHERE ` + where

	in, err := scanIntern(q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return intern.Intern{}, intern.ErrInternNotFound
		}
		return intern.Intern{}, fmt.Errorf("failed to get intern: %w", err)
	}
	return in, nil
}

// List implements intern.InternRepository.
func (r *internRepositoryImpl) List(ctx context.Context, filter intern.InternFilter) ([]intern.Intern, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.Search != nil && *filter.Search != "" {
		baseWhere += fmt.Sprintf(" AND (i.full_name ILIKE $%d OR i.student_id ILIKE $%d OR u.email ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.IsActive != nil {
		baseWhere += fmt.Sprintf(" AND i.is_active = $%d", argIdx)
		args = append(args, *filter.IsActive)
		argIdx++
	}

	countQuery := `
		SELECT COUNT(*)
		FROM interns i
		JOIN users u ON u.id = i.user_id
		WHERE ` + baseWhere
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count interns: %w", err)
	}

	limit, offset := paginate(filter.Page, filter.Limit)
	selectQuery := fmt.Sprintf(`
		SELECT %s
		FROM interns i
		JOIN users u ON u.id = i.user_id
		WHERE %s
		ORDER BY i.full_name ASC
		LIMIT $%d OFFSET $%d
	`, internColumns, baseWhere, argIdx, argIdx+1)
	args = append(args, limit, offset)

	interns, err := r.query(ctx, q, selectQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	return interns, total, nil
}

// ListActive implements intern.InternRepository.
func (r *internRepositoryImpl) ListActive(ctx context.Context) ([]intern.Intern, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + internColumns + `
		FROM interns i
		JOIN users u ON u.id = i.user_id
		WHERE i.is_active = TRUE
		ORDER BY i.full_name ASC`
	return r.query(ctx, q, query)
}

// CountActive implements intern.InternRepository.
func (r *internRepositoryImpl) CountActive(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM interns WHERE is_active = TRUE`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active interns: %w", err)
	}
	return count, nil
}

func (r *internRepositoryImpl) query(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]intern.Intern, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query interns: %w", err)
	}
	defer rows.Close()

	var interns []intern.Intern
	for rows.Next() {
		in, err := scanIntern(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan intern: %w", err)
		}
		interns = append(interns, in)
	}
	return interns, rows.Err()
}

func NewInternRepository(db *database.DB) intern.InternRepository {
	return &internRepositoryImpl{db: db}
}
