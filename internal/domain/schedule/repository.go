package schedule

import (
	"context"
	"time"
)

type ScheduleRepository interface {
	// Upsert creates or replaces the schedule for (intern, day_of_week).
	Upsert(ctx context.Context, s Schedule) (Schedule, error)
	GetByID(ctx context.Context, id string) (Schedule, error)
	// GetActiveForDay returns ErrScheduleNotFound when the intern has no active schedule that weekday.
	GetActiveForDay(ctx context.Context, internID string, day time.Weekday) (Schedule, error)
	ListByIntern(ctx context.Context, internID string) ([]Schedule, error)
	List(ctx context.Context) ([]Schedule, error)
	Update(ctx context.Context, s Schedule) error
	Delete(ctx context.Context, id string) error
}
