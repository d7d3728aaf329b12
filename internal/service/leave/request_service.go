package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/leave"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/database"
)

// RequestService applies state changes to a single leave request under a
// transaction.
type RequestService struct {
	tx database.Transactor
	leave.LeaveRepository
	now func() time.Time
}

func NewRequestService(tx database.Transactor, leaveRepository leave.LeaveRepository) *RequestService {
	return &RequestService{
		tx:              tx,
		LeaveRepository: leaveRepository,
		now:             time.Now,
	}
}

func (r *RequestService) CreateRequest(ctx context.Context, internID string, req leave.CreateLeaveRequest) (leave.Leave, error) {
	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return leave.Leave{}, fmt.Errorf("invalid start_date: %w", err)
	}

	var endDate *time.Time
	if req.EndDate != nil && *req.EndDate != "" {
		parsed, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			return leave.Leave{}, fmt.Errorf("invalid end_date: %w", err)
		}
		// single-day leaves store no end date
		if !parsed.Equal(startDate) {
			endDate = &parsed
		}
	}

	created, err := r.LeaveRepository.Create(ctx, leave.Leave{
		InternID:    internID,
		Type:        leave.Type(req.Type),
		ReasonTitle: req.ReasonTitle,
		StartDate:   startDate,
		EndDate:     endDate,
		Notes:       req.Notes,
		Status:      leave.StatusPending,
	})
	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return created, nil
}

func (r *RequestService) Approve(ctx context.Context, requestID, approverID string, comments *string) (leave.Leave, error) {
	return r.decide(ctx, requestID, func(l *leave.Leave, at time.Time) error {
		return l.Approve(approverID, at, comments)
	})
}

func (r *RequestService) Reject(ctx context.Context, requestID, reason, approverID string, comments *string) (leave.Leave, error) {
	return r.decide(ctx, requestID, func(l *leave.Leave, at time.Time) error {
		return l.Reject(approverID, at, reason, comments)
	})
}

func (r *RequestService) decide(ctx context.Context, requestID string, apply func(*leave.Leave, time.Time) error) (leave.Leave, error) {
	var saved leave.Leave
	err := r.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		request, err := r.LeaveRepository.GetByID(txCtx, requestID)
		if err != nil {
			return err
		}

		if err := apply(&request, r.now()); err != nil {
			return err
		}

		if err := r.LeaveRepository.Update(txCtx, request); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		saved = request
		return nil
	})
	return saved, err
}
