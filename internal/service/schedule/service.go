package schedule

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/intern"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/schedule"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/user"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/database"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/evaluator"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/jwt"
)

type scheduleServiceImpl struct {
	tx           database.Transactor
	scheduleRepo schedule.ScheduleRepository
	internRepo   intern.InternRepository
}

func NewScheduleService(tx database.Transactor, scheduleRepo schedule.ScheduleRepository, internRepo intern.InternRepository) schedule.ScheduleService {
	return &scheduleServiceImpl{
		tx:           tx,
		scheduleRepo: scheduleRepo,
		internRepo:   internRepo,
	}
}

// Create implements schedule.ScheduleService. An existing schedule for the
// same intern and weekday is replaced.
func (s *scheduleServiceImpl) Create(ctx context.Context, req schedule.CreateScheduleRequest) (schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	if _, err := s.internRepo.GetByID(ctx, req.InternID); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	start, _ := evaluator.ParseTimeOfDay(req.StartTime)
	end, _ := evaluator.ParseTimeOfDay(req.EndTime)
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	saved, err := s.scheduleRepo.Upsert(ctx, schedule.Schedule{
		InternID:      req.InternID,
		DayOfWeek:     req.DayOfWeek,
		StartTime:     start,
		EndTime:       end,
		BreakDuration: req.BreakDuration,
		IsActive:      isActive,
	})
	if err != nil {
		return schedule.ScheduleResponse{}, fmt.Errorf("failed to save schedule: %w", err)
	}

	return toScheduleResponse(saved), nil
}

// GetByID implements schedule.ScheduleService.
func (s *scheduleServiceImpl) GetByID(ctx context.Context, id string) (schedule.ScheduleResponse, error) {
	sc, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}

	ownInternID, err := s.ownInternID(ctx)
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}
	if ownInternID != "" && sc.InternID != ownInternID {
		return schedule.ScheduleResponse{}, schedule.ErrScheduleNotFound
	}

	return toScheduleResponse(sc), nil
}

// List implements schedule.ScheduleService. Interns always get their own
// schedules regardless of internID.
func (s *scheduleServiceImpl) List(ctx context.Context, internID *string) ([]schedule.ScheduleResponse, error) {
	ownInternID, err := s.ownInternID(ctx)
	if err != nil {
		return nil, err
	}
	if ownInternID != "" {
		internID = &ownInternID
	}

	var schedules []schedule.Schedule
	if internID != nil && *internID != "" {
		schedules, err = s.scheduleRepo.ListByIntern(ctx, *internID)
	} else {
		schedules, err = s.scheduleRepo.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}

	responses := make([]schedule.ScheduleResponse, 0, len(schedules))
	for _, sc := range schedules {
		responses = append(responses, toScheduleResponse(sc))
	}
	return responses, nil
}

// Update implements schedule.ScheduleService.
func (s *scheduleServiceImpl) Update(ctx context.Context, req schedule.UpdateScheduleRequest) (schedule.ScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	sc, err := s.scheduleRepo.GetByID(ctx, req.ID)
	if err != nil {
		return schedule.ScheduleResponse{}, err
	}

	sc.DayOfWeek = req.DayOfWeek
	sc.StartTime, _ = evaluator.ParseTimeOfDay(req.StartTime)
	sc.EndTime, _ = evaluator.ParseTimeOfDay(req.EndTime)
	sc.BreakDuration = req.BreakDuration
	if req.IsActive != nil {
		sc.IsActive = *req.IsActive
	}

	if err := s.scheduleRepo.Update(ctx, sc); err != nil {
		return schedule.ScheduleResponse{}, err
	}

	return toScheduleResponse(sc), nil
}

// Delete implements schedule.ScheduleService.
func (s *scheduleServiceImpl) Delete(ctx context.Context, id string) error {
	return s.scheduleRepo.Delete(ctx, id)
}

// Assign implements schedule.ScheduleService. Every day in the request is
// upserted for every active intern in one transaction.
func (s *scheduleServiceImpl) Assign(ctx context.Context, req schedule.AssignScheduleRequest) (schedule.AssignScheduleResponse, error) {
	if err := req.Validate(); err != nil {
		return schedule.AssignScheduleResponse{}, err
	}

	type assignDay struct {
		day        int
		start, end evaluator.TimeOfDay
	}
	days := make([]assignDay, 0, len(req.Days))
	for _, d := range req.Days {
		start, _ := evaluator.ParseTimeOfDay(d.StartTime)
		end, _ := evaluator.ParseTimeOfDay(d.EndTime)
		days = append(days, assignDay{day: d.DayOfWeek, start: start, end: end})
	}
	breakMinutes := req.BreakDuration()

	var result schedule.AssignScheduleResponse
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		interns, err := s.internRepo.ListActive(txCtx)
		if err != nil {
			return fmt.Errorf("failed to list active interns: %w", err)
		}

		for _, in := range interns {
			existing, err := s.scheduleRepo.ListByIntern(txCtx, in.ID)
			if err != nil {
				return fmt.Errorf("failed to list schedules for intern %s: %w", in.ID, err)
			}
			has := make(map[int]bool, len(existing))
			for _, sc := range existing {
				has[sc.DayOfWeek] = true
			}

			for _, d := range days {
				if _, err := s.scheduleRepo.Upsert(txCtx, schedule.Schedule{
					InternID:      in.ID,
					DayOfWeek:     d.day,
					StartTime:     d.start,
					EndTime:       d.end,
					BreakDuration: breakMinutes,
					IsActive:      true,
				}); err != nil {
					return fmt.Errorf("failed to assign schedule to intern %s: %w", in.ID, err)
				}
				if has[d.day] {
					result.SchedulesUpdated++
				} else {
					result.SchedulesCreated++
				}
			}
		}
		result.InternsAffected = len(interns)
		return nil
	})
	if err != nil {
		return schedule.AssignScheduleResponse{}, err
	}

	slog.Info("Default schedule assigned",
		"name", req.Name,
		"interns", result.InternsAffected,
		"created", result.SchedulesCreated,
		"updated", result.SchedulesUpdated)
	return result, nil
}

// ownInternID returns the caller's intern profile id when the caller may
// only see their own schedules, or "" for managers.
func (s *scheduleServiceImpl) ownInternID(ctx context.Context) (string, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return "", err
	}
	if user.HasPermission(claims.Role, user.PermissionScheduleManage) {
		return "", nil
	}

	profile, err := s.internRepo.GetByUserID(ctx, claims.UserID)
	if err != nil {
		return "", err
	}
	return profile.ID, nil
}

func toScheduleResponse(sc schedule.Schedule) schedule.ScheduleResponse {
	return schedule.ScheduleResponse{
		ID:             sc.ID,
		InternID:       sc.InternID,
		InternName:     sc.InternName,
		DayOfWeek:      sc.DayOfWeek,
		DayName:        schedule.DayName(sc.DayOfWeek),
		StartTime:      sc.StartTime.String(),
		EndTime:        sc.EndTime.String(),
		BreakDuration:  sc.BreakDuration,
		ScheduledHours: sc.DaySchedule().ScheduledHours(),
		IsActive:       sc.IsActive,
	}
}
