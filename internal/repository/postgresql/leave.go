package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/leave"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/database"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

const leaveSelect = `
	SELECT l.id, l.intern_id, l.type, l.reason_title, l.start_date, l.end_date, l.notes,
		   l.status, l.approved_by, l.approved_at, l.rejection_reason, l.created_at, l.updated_at,
		   i.full_name, i.student_id, i.user_id
	FROM leaves l
	JOIN interns i ON i.id = l.intern_id
`

func scanLeave(row pgx.Row) (leave.Leave, error) {
	var l leave.Leave
	err := row.Scan(
		&l.ID, &l.InternID, &l.Type, &l.ReasonTitle, &l.StartDate, &l.EndDate, &l.Notes,
		&l.Status, &l.ApprovedBy, &l.ApprovedAt, &l.RejectionReason, &l.CreatedAt, &l.UpdatedAt,
		&l.InternName, &l.InternStudentID, &l.InternUserID,
	)
	return l, err
}

// Create implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leaves (intern_id, type, reason_title, start_date, end_date, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err := q.QueryRow(ctx, query,
		l.InternID, l.Type, l.ReasonTitle, l.StartDate, l.EndDate, l.Notes, l.Status,
	).Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to create leave: %w", err)
	}
	return l, nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	l, err := scanLeave(q.QueryRow(ctx, leaveSelect+` WHERE l.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Leave{}, leave.ErrLeaveNotFound
		}
		return leave.Leave{}, fmt.Errorf("failed to get leave: %w", err)
	}
	return l, nil
}

// List implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) List(ctx context.Context, filter leave.LeaveFilter) ([]leave.Leave, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.InternID != nil && *filter.InternID != "" {
		baseWhere += fmt.Sprintf(" AND l.intern_id = $%d", argIdx)
		args = append(args, *filter.InternID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		baseWhere += fmt.Sprintf(" AND l.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Type != nil && *filter.Type != "" {
		baseWhere += fmt.Sprintf(" AND l.type = $%d", argIdx)
		args = append(args, *filter.Type)
		argIdx++
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM leaves l WHERE ` + baseWhere
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leaves: %w", err)
	}

	limit, offset := paginate(filter.Page, filter.Limit)
	selectQuery := fmt.Sprintf(`%s WHERE %s ORDER BY l.created_at DESC LIMIT $%d OFFSET $%d`,
		leaveSelect, baseWhere, argIdx, argIdx+1)
	args = append(args, limit, offset)

	leaves, err := r.query(ctx, q, selectQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	return leaves, total, nil
}

// Update implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Update(ctx context.Context, l leave.Leave) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leaves
		SET notes = $1, status = $2, approved_by = $3, approved_at = $4,
			rejection_reason = $5, updated_at = NOW()
		WHERE id = $6
	`
	tag, err := q.Exec(ctx, query, l.Notes, l.Status, l.ApprovedBy, l.ApprovedAt, l.RejectionReason, l.ID)
	if err != nil {
		return fmt.Errorf("failed to update leave: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}
	return nil
}

// Delete implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leaves WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete leave: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveNotFound
	}
	return nil
}

// ListApprovedBetween implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListApprovedBetween(ctx context.Context, from, to time.Time) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := leaveSelect + `
		WHERE l.status = 'approved'
		  AND l.start_date <= $2
		  AND COALESCE(l.end_date, l.start_date) >= $1
		ORDER BY l.start_date ASC`
	return r.query(ctx, q, query, from.Format("2006-01-02"), to.Format("2006-01-02"))
}

// CountPending implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) CountPending(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM leaves WHERE status = 'pending'`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count pending leaves: %w", err)
	}
	return count, nil
}

func (r *leaveRepositoryImpl) query(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]leave.Leave, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaves: %w", err)
	}
	defer rows.Close()

	var leaves []leave.Leave
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave: %w", err)
		}
		leaves = append(leaves, l)
	}
	return leaves, rows.Err()
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}
