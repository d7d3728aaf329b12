package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	Create(ctx context.Context, leave Leave) (Leave, error)
	GetByID(ctx context.Context, id string) (Leave, error)
	List(ctx context.Context, filter LeaveFilter) ([]Leave, int64, error)
	Update(ctx context.Context, leave Leave) error
	Delete(ctx context.Context, id string) error
	// ListApprovedBetween returns approved leaves overlapping [from, to].
	ListApprovedBetween(ctx context.Context, from, to time.Time) ([]Leave, error)
	CountPending(ctx context.Context) (int64, error)
}
