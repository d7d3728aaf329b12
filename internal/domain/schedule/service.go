package schedule

import "context"

type ScheduleService interface {
	Create(ctx context.Context, req CreateScheduleRequest) (ScheduleResponse, error)
	GetByID(ctx context.Context, id string) (ScheduleResponse, error)
	List(ctx context.Context, internID *string) ([]ScheduleResponse, error)
	Update(ctx context.Context, req UpdateScheduleRequest) (ScheduleResponse, error)
	Delete(ctx context.Context, id string) error
	// Assign upserts the same weekly schedule for every active intern.
	Assign(ctx context.Context, req AssignScheduleRequest) (AssignScheduleResponse, error)
}
