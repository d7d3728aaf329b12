package leave

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/intern"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/leave"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/notification"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/user"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/database"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/jwt"
)

const dateLayout = "2006-01-02"

type LeaveServiceImpl struct {
	leave.LeaveRepository
	intern.InternRepository
	requestService *RequestService
	notifier       notification.Service
}

func NewLeaveService(tx database.Transactor, leaveRepo leave.LeaveRepository, internRepo intern.InternRepository, notifier notification.Service) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRepository:  leaveRepo,
		InternRepository: internRepo,
		requestService:   NewRequestService(tx, leaveRepo),
		notifier:         notifier,
	}
}

// Create implements leave.LeaveService.
func (l *LeaveServiceImpl) Create(ctx context.Context, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	profile, err := l.currentIntern(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	created, err := l.requestService.CreateRequest(ctx, profile.ID, req)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	request, err := l.LeaveRepository.GetByID(ctx, created.ID)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to get created leave request: %w", err)
	}

	return toLeaveResponse(request), nil
}

// ListMine implements leave.LeaveService.
func (l *LeaveServiceImpl) ListMine(ctx context.Context, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	profile, err := l.currentIntern(ctx)
	if err != nil {
		return leave.ListLeaveResponse{}, err
	}

	filter.InternID = &profile.ID
	return l.list(ctx, filter)
}

// List implements leave.LeaveService.
func (l *LeaveServiceImpl) List(ctx context.Context, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	return l.list(ctx, filter)
}

func (l *LeaveServiceImpl) list(ctx context.Context, filter leave.LeaveFilter) (leave.ListLeaveResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveResponse{}, err
	}

	requests, total, err := l.LeaveRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	responses := make([]leave.LeaveResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, toLeaveResponse(request))
	}

	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return leave.ListLeaveResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Showing:    showing,
		Leaves:     responses,
	}, nil
}

// GetByID implements leave.LeaveService.
func (l *LeaveServiceImpl) GetByID(ctx context.Context, id string) (leave.LeaveResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	request, err := l.LeaveRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	// Interns can only read their own requests
	if !user.HasPermission(claims.Role, user.PermissionLeaveViewAll) && request.InternUserID != claims.UserID {
		return leave.LeaveResponse{}, leave.ErrLeaveNotOwned
	}

	return toLeaveResponse(request), nil
}

// Approve implements leave.LeaveService.
func (l *LeaveServiceImpl) Approve(ctx context.Context, req leave.ApproveLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	request, err := l.requestService.Approve(ctx, req.ID, claims.UserID, req.Comments)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	l.notify(ctx, notification.Notification{
		RecipientID: request.InternUserID,
		Type:        notification.TypeLeaveApproved,
		Title:       "Leave approved",
		Message:     fmt.Sprintf("Your %s request \"%s\" was approved", request.Type, request.ReasonTitle),
		Data:        map[string]interface{}{"leave_id": request.ID},
	})

	return toLeaveResponse(request), nil
}

// Reject implements leave.LeaveService.
func (l *LeaveServiceImpl) Reject(ctx context.Context, req leave.RejectLeaveRequest) (leave.LeaveResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	request, err := l.requestService.Reject(ctx, req.ID, req.Reason, claims.UserID, req.Comments)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	l.notify(ctx, notification.Notification{
		RecipientID: request.InternUserID,
		Type:        notification.TypeLeaveRejected,
		Title:       "Leave rejected",
		Message:     fmt.Sprintf("Your %s request \"%s\" was rejected: %s", request.Type, request.ReasonTitle, req.Reason),
		Data:        map[string]interface{}{"leave_id": request.ID, "reason": req.Reason},
	})

	return toLeaveResponse(request), nil
}

// Delete implements leave.LeaveService.
func (l *LeaveServiceImpl) Delete(ctx context.Context, id string) error {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	request, err := l.LeaveRepository.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if request.InternUserID != claims.UserID {
		return leave.ErrLeaveNotOwned
	}
	if request.Status != leave.StatusPending {
		return leave.ErrLeaveAlreadyProcessed
	}

	return l.LeaveRepository.Delete(ctx, id)
}

func (l *LeaveServiceImpl) currentIntern(ctx context.Context) (intern.Intern, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return intern.Intern{}, err
	}
	return l.InternRepository.GetByUserID(ctx, claims.UserID)
}

func (l *LeaveServiceImpl) notify(ctx context.Context, n notification.Notification) {
	if l.notifier == nil || n.RecipientID == "" {
		return
	}
	if err := l.notifier.Notify(ctx, n); err != nil {
		slog.Warn("Failed to queue notification", "type", n.Type, "recipient", n.RecipientID, "error", err)
	}
}

func toLeaveResponse(l leave.Leave) leave.LeaveResponse {
	resp := leave.LeaveResponse{
		ID:              l.ID,
		InternID:        l.InternID,
		InternName:      l.InternName,
		InternStudentID: l.InternStudentID,
		Type:            string(l.Type),
		ReasonTitle:     l.ReasonTitle,
		Status:          string(l.Status),
		StartDate:       l.StartDate.Format(dateLayout),
		Days:            l.Days(),
		Notes:           l.Notes,
		RejectionReason: l.RejectionReason,
		ApprovedBy:      l.ApprovedBy,
		CreatedAt:       l.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       l.UpdatedAt.Format(time.RFC3339),
	}
	if l.EndDate != nil {
		end := l.EndDate.Format(dateLayout)
		resp.EndDate = &end
	}
	if l.ApprovedAt != nil {
		at := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &at
	}
	return resp
}
