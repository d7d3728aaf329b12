package leave

import (
	"context"
)

type LeaveService interface {
	Create(ctx context.Context, req CreateLeaveRequest) (LeaveResponse, error)
	// ListMine lists leaves of the authenticated intern
	ListMine(ctx context.Context, filter LeaveFilter) (ListLeaveResponse, error)
	List(ctx context.Context, filter LeaveFilter) (ListLeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	Approve(ctx context.Context, req ApproveLeaveRequest) (LeaveResponse, error)
	Reject(ctx context.Context, req RejectLeaveRequest) (LeaveResponse, error)
	// Delete removes the caller's own pending request
	Delete(ctx context.Context, id string) error
}
