package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/attendance"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/geofence"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/intern"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/notification"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/schedule"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/user"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/database"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/evaluator"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/geocode"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/jwt"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/service/file"
)

const (
	photoKindClockIn  = "clock_in"
	photoKindClockOut = "clock_out"

	defaultGeocodeTimeout = 5 * time.Second
)

type AttendanceServiceImpl struct {
	tx database.Transactor
	attendance.AttendanceRepository
	intern.InternRepository
	geofence.GeofenceRepository
	schedule.ScheduleRepository
	fileService file.FileService
	geocoder    geocode.Geocoder
	notifier    notification.Service

	geocodeTimeout time.Duration
	loc            *time.Location
	now            func() time.Time
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	internRepo intern.InternRepository,
	geofenceRepo geofence.GeofenceRepository,
	scheduleRepo schedule.ScheduleRepository,
	fileService file.FileService,
	geocoder geocode.Geocoder,
	notifier notification.Service,
	loc *time.Location,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	if geocoder == nil {
		geocoder = geocode.Noop{}
	}
	return &AttendanceServiceImpl{
		tx:                   tx,
		AttendanceRepository: attendanceRepo,
		InternRepository:     internRepo,
		GeofenceRepository:   geofenceRepo,
		ScheduleRepository:   scheduleRepo,
		fileService:          fileService,
		geocoder:             geocoder,
		notifier:             notifier,
		geocodeTimeout:       defaultGeocodeTimeout,
		loc:                  loc,
		now:                  time.Now,
	}
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	profile, err := a.currentIntern(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.now().In(a.loc)
	date := localDate(now)

	existing, err := a.AttendanceRepository.GetByInternAndDate(ctx, profile.ID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing != nil {
		if err := existing.CanClockIn(); err != nil {
			return attendance.AttendanceResponse{}, err
		}
	}

	zone, err := a.resolveZone(ctx, req.GeofenceLocationID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	daySchedule, err := a.daySchedule(ctx, profile.ID, now.Weekday())
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	result, err := evaluator.EvaluateClockIn(evaluator.ClockEvent{
		Timestamp: now,
		Location:  evaluator.GeoPoint{Latitude: *req.Latitude, Longitude: *req.Longitude},
		Zone:      zone,
	}, daySchedule)
	if err != nil {
		return attendance.AttendanceResponse{}, zoneError(err)
	}

	address := a.lookupAddress(ctx, *req.Latitude, *req.Longitude)

	photoKey, err := a.fileService.StoreAttendancePhoto(ctx, profile.ID, date, photoKindClockIn, req.Photo)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to store clock-in photo: %w", err)
	}

	record := attendance.Attendance{
		InternID:           profile.ID,
		Date:               date,
		ClockInTime:        &now,
		ClockInLatitude:    req.Latitude,
		ClockInLongitude:   req.Longitude,
		ClockInPhoto:       &photoKey,
		LocationAddress:    address,
		GeofenceLocationID: geofenceID(req.GeofenceLocationID),
		ClockInMethod:      attendance.ClockInMethodWeb,
		IsLate:             result.IsLate,
		Status:             attendance.StatusPending,
	}

	var saved attendance.Attendance
	err = a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err := a.AttendanceRepository.LockByInternAndDate(txCtx, profile.ID, date)
		if err != nil {
			return fmt.Errorf("failed to lock today's attendance: %w", err)
		}

		if current != nil {
			if err := current.CanClockIn(); err != nil {
				return err
			}
			record.ID = current.ID
			if err := a.AttendanceRepository.Update(txCtx, record); err != nil {
				return fmt.Errorf("failed to update attendance: %w", err)
			}
			saved, err = a.AttendanceRepository.GetByID(txCtx, record.ID)
			return err
		}

		created, err := a.AttendanceRepository.Create(txCtx, record)
		if err != nil {
			if errors.Is(err, attendance.ErrDuplicateAttendance) {
				return attendance.ErrAlreadyClockedIn
			}
			return fmt.Errorf("failed to create attendance: %w", err)
		}
		saved = created
		return nil
	})
	if err != nil {
		a.discardPhoto(ctx, photoKey)
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Intern clocked in", "intern_id", profile.ID, "date", date.Format(dateLayout), "late", saved.IsLate)

	resp := a.toAttendanceResponse(saved)
	resp.DistanceMeters = result.DistanceMeters
	return resp, nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	profile, err := a.currentIntern(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.now().In(a.loc)
	date := localDate(now)

	existing, err := a.AttendanceRepository.GetByInternAndDate(ctx, profile.ID, date)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if existing == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotClockedIn
	}
	if err := existing.CanClockOut(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	zone, err := a.resolveZone(ctx, req.GeofenceLocationID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	event := evaluator.ClockEvent{
		Timestamp: now,
		Location:  evaluator.GeoPoint{Latitude: *req.Latitude, Longitude: *req.Longitude},
		Zone:      zone,
	}
	distance, err := evaluator.CheckZone(event)
	if err != nil {
		return attendance.AttendanceResponse{}, zoneError(err)
	}

	daySchedule, err := a.daySchedule(ctx, profile.ID, now.Weekday())
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	photoKey, err := a.fileService.StoreAttendancePhoto(ctx, profile.ID, date, photoKindClockOut, req.Photo)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to store clock-out photo: %w", err)
	}

	var saved attendance.Attendance
	err = a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err := a.AttendanceRepository.LockByInternAndDate(txCtx, profile.ID, date)
		if err != nil {
			return fmt.Errorf("failed to lock today's attendance: %w", err)
		}
		if current == nil {
			return attendance.ErrNotClockedIn
		}
		if err := current.CanClockOut(); err != nil {
			return err
		}

		// An open break ends at clock-out
		if current.BreakStart != nil && current.BreakEnd == nil {
			current.BreakEnd = &now
		}

		result, err := evaluator.EvaluateClockOut(*current.ClockInTime, event, current.BreakStart, current.BreakEnd, daySchedule)
		if err != nil {
			return zoneError(err)
		}

		current.ClockOutTime = &now
		current.ClockOutLatitude = req.Latitude
		current.ClockOutLongitude = req.Longitude
		current.ClockOutPhoto = &photoKey
		current.TotalHours = &result.TotalHours
		current.IsUndertime = result.IsUndertime
		current.IsOvertime = result.IsOvertime
		if current.GeofenceLocationID == nil {
			current.GeofenceLocationID = geofenceID(req.GeofenceLocationID)
		}

		if err := a.AttendanceRepository.Update(txCtx, *current); err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}
		saved, err = a.AttendanceRepository.GetByID(txCtx, current.ID)
		return err
	})
	if err != nil {
		a.discardPhoto(ctx, photoKey)
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Intern clocked out", "intern_id", profile.ID, "date", date.Format(dateLayout), "total_hours", *saved.TotalHours)

	resp := a.toAttendanceResponse(saved)
	resp.DistanceMeters = distance
	return resp, nil
}

// StartBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) StartBreak(ctx context.Context) (attendance.AttendanceResponse, error) {
	return a.updateToday(ctx, func(att *attendance.Attendance, now time.Time) error {
		return att.StartBreak(now)
	})
}

// EndBreak implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) EndBreak(ctx context.Context) (attendance.AttendanceResponse, error) {
	return a.updateToday(ctx, func(att *attendance.Attendance, now time.Time) error {
		return att.EndBreak(now)
	})
}

func (a *AttendanceServiceImpl) updateToday(ctx context.Context, apply func(*attendance.Attendance, time.Time) error) (attendance.AttendanceResponse, error) {
	profile, err := a.currentIntern(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.now().In(a.loc)
	date := localDate(now)

	var saved attendance.Attendance
	err = a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err := a.AttendanceRepository.LockByInternAndDate(txCtx, profile.ID, date)
		if err != nil {
			return fmt.Errorf("failed to lock today's attendance: %w", err)
		}
		if current == nil {
			return attendance.ErrNotClockedIn
		}
		if err := apply(current, now); err != nil {
			return err
		}
		if err := a.AttendanceRepository.Update(txCtx, *current); err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}
		saved, err = a.AttendanceRepository.GetByID(txCtx, current.ID)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return a.toAttendanceResponse(saved), nil
}

// GetToday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context) (attendance.TodayResponse, error) {
	profile, err := a.currentIntern(ctx)
	if err != nil {
		return attendance.TodayResponse{}, err
	}

	now := a.now().In(a.loc)
	date := localDate(now)

	record, err := a.AttendanceRepository.GetByInternAndDate(ctx, profile.ID, date)
	if err != nil {
		return attendance.TodayResponse{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}

	resp := attendance.TodayResponse{
		Date:       date.Format(dateLayout),
		CanClockIn: record == nil || record.CanClockIn() == nil,
	}
	if record != nil {
		mapped := a.toAttendanceResponse(*record)
		resp.Attendance = &mapped
		resp.CanClockOut = record.CanClockOut() == nil
	}

	daySchedule, err := a.daySchedule(ctx, profile.ID, now.Weekday())
	if err != nil {
		return attendance.TodayResponse{}, err
	}
	if daySchedule != nil {
		start := daySchedule.StartTime.String()
		end := daySchedule.EndTime.String()
		hours := daySchedule.ScheduledHours()
		resp.HasSchedule = true
		resp.ScheduleStart = &start
		resp.ScheduleEnd = &end
		resp.ScheduledHours = &hours
	}

	return resp, nil
}

// GetMyHistory implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyHistory(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	profile, err := a.currentIntern(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	filter.InternID = &profile.ID
	filter.InternName = nil
	return a.list(ctx, filter)
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	return a.list(ctx, filter)
}

func (a *AttendanceServiceImpl) list(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, a.toAttendanceResponse(record))
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages(total, filter.Limit),
		Showing:     showing(total, filter.Page, filter.Limit),
		Attendances: responses,
	}, nil
}

// GetAttendance implements attendance.AttendanceService. Interns can only
// read their own records.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if !user.HasPermission(claims.Role, user.PermissionAttendanceViewAll) && record.InternUserID != claims.UserID {
		return attendance.AttendanceResponse{}, attendance.ErrUnauthorized
	}

	return a.toAttendanceResponse(record), nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	clockIn, clockOut := req.ParsedTimes()

	var saved attendance.Attendance
	err = a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		record, err := a.AttendanceRepository.LockByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		if clockIn != nil {
			record.ClockInTime = clockIn
		}
		if clockOut != nil {
			if record.ClockInTime == nil {
				return attendance.ErrNotClockedIn
			}
			record.ClockOutTime = clockOut
		}
		if req.Notes != nil {
			record.Notes = req.Notes
		}

		if err := a.reevaluate(txCtx, &record); err != nil {
			return err
		}

		if err := a.AttendanceRepository.Update(txCtx, record); err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}
		saved, err = a.AttendanceRepository.GetByID(txCtx, record.ID)
		return err
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	slog.Info("Attendance corrected", "attendance_id", saved.ID, "by", claims.UserID)

	a.notify(ctx, notification.Notification{
		RecipientID: saved.InternUserID,
		Type:        notification.TypeAttendanceUpdated,
		Title:       "Attendance updated",
		Message:     fmt.Sprintf("Your attendance for %s was corrected", saved.Date.Format(dateLayout)),
		Data:        map[string]interface{}{"attendance_id": saved.ID},
	})

	return a.toAttendanceResponse(saved), nil
}

// reevaluate recomputes lateness, hours and flags after clock times change.
func (a *AttendanceServiceImpl) reevaluate(ctx context.Context, record *attendance.Attendance) error {
	if record.ClockInTime == nil {
		return nil
	}
	if record.ClockOutTime != nil && record.ClockOutTime.Before(*record.ClockInTime) {
		return validationError("clock_out_time", "clock_out_time must be after clock_in_time")
	}
	if err := checkBreakWithinShift(record); err != nil {
		return err
	}

	daySchedule, err := a.daySchedule(ctx, record.InternID, record.Date.Weekday())
	if err != nil {
		return err
	}

	record.IsLate = evaluator.IsLate(record.ClockInTime.In(a.loc), daySchedule)
	if record.ClockOutTime == nil {
		return nil
	}

	result, err := evaluator.EvaluateClockOut(*record.ClockInTime, evaluator.ClockEvent{Timestamp: *record.ClockOutTime}, record.BreakStart, record.BreakEnd, daySchedule)
	if err != nil {
		return err
	}
	record.TotalHours = &result.TotalHours
	record.IsUndertime = result.IsUndertime
	record.IsOvertime = result.IsOvertime
	return nil
}

// checkBreakWithinShift keeps recorded break bounds inside [clock-in, clock-out].
// An open break is closed at the clock-out.
func checkBreakWithinShift(record *attendance.Attendance) error {
	if record.BreakStart == nil {
		return nil
	}
	if record.BreakStart.Before(*record.ClockInTime) {
		return validationError("clock_in_time", "clock_in_time must not be after break_start")
	}
	if record.ClockOutTime == nil {
		return nil
	}
	if record.BreakStart.After(*record.ClockOutTime) {
		return validationError("clock_out_time", "clock_out_time must not be before break_start")
	}
	if record.BreakEnd == nil {
		record.BreakEnd = record.ClockOutTime
	} else if record.BreakEnd.After(*record.ClockOutTime) {
		return validationError("clock_out_time", "clock_out_time must not be before break_end")
	}
	return nil
}

// ListApprovals implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListApprovals(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListApprovalResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListApprovalResponse{}, err
	}

	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListApprovalResponse{}, fmt.Errorf("failed to list approvals: %w", err)
	}

	approvals := make([]attendance.ApprovalResponse, 0, len(records))
	for _, record := range records {
		approvals = append(approvals, toApprovalResponse(record))
	}

	return attendance.ListApprovalResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages(total, filter.Limit),
		Showing:    showing(total, filter.Page, filter.Limit),
		Approvals:  approvals,
	}, nil
}

// ApproveAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ApproveAttendance(ctx context.Context, req attendance.ApproveAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	saved, err := a.decide(ctx, req.ID, func(record *attendance.Attendance, approverID string, at time.Time) error {
		return record.Approve(approverID, at, req.Notes)
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	a.notify(ctx, notification.Notification{
		RecipientID: saved.InternUserID,
		Type:        notification.TypeAttendanceApproved,
		Title:       "Attendance approved",
		Message:     fmt.Sprintf("Your attendance for %s was approved", saved.Date.Format(dateLayout)),
		Data:        map[string]interface{}{"attendance_id": saved.ID},
	})

	return a.toAttendanceResponse(saved), nil
}

// RejectAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RejectAttendance(ctx context.Context, req attendance.RejectAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	saved, err := a.decide(ctx, req.ID, func(record *attendance.Attendance, approverID string, at time.Time) error {
		return record.Reject(approverID, at, req.Reason)
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	a.notify(ctx, notification.Notification{
		RecipientID: saved.InternUserID,
		Type:        notification.TypeAttendanceRejected,
		Title:       "Attendance rejected",
		Message:     fmt.Sprintf("Your attendance for %s was rejected: %s", saved.Date.Format(dateLayout), req.Reason),
		Data:        map[string]interface{}{"attendance_id": saved.ID, "reason": req.Reason},
	})

	return a.toAttendanceResponse(saved), nil
}

func (a *AttendanceServiceImpl) decide(ctx context.Context, id string, apply func(*attendance.Attendance, string, time.Time) error) (attendance.Attendance, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return attendance.Attendance{}, err
	}

	var saved attendance.Attendance
	err = a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		record, err := a.AttendanceRepository.LockByID(txCtx, id)
		if err != nil {
			return err
		}
		if err := apply(&record, claims.UserID, a.now()); err != nil {
			return err
		}
		if err := a.AttendanceRepository.Update(txCtx, record); err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}
		saved, err = a.AttendanceRepository.GetByID(txCtx, id)
		return err
	})
	return saved, err
}

// ==================== HELPER FUNCTIONS ====================

func (a *AttendanceServiceImpl) currentIntern(ctx context.Context) (intern.Intern, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return intern.Intern{}, err
	}

	profile, err := a.InternRepository.GetByUserID(ctx, claims.UserID)
	if err != nil {
		return intern.Intern{}, err
	}
	if !profile.IsActive {
		return intern.Intern{}, intern.ErrInternInactive
	}
	return profile, nil
}

// resolveZone loads the selected geofence. No selection means no zone
// check; a missing or inactive selection is ErrInvalidGeofence.
func (a *AttendanceServiceImpl) resolveZone(ctx context.Context, id *string) (*evaluator.GeofenceZone, error) {
	if id == nil || *id == "" {
		return nil, nil
	}

	location, err := a.GeofenceRepository.GetActiveByID(ctx, *id)
	if err != nil {
		if errors.Is(err, geofence.ErrGeofenceNotFound) {
			return nil, attendance.ErrInvalidGeofence
		}
		return nil, fmt.Errorf("failed to get geofence location: %w", err)
	}

	zone := location.Zone()
	return &zone, nil
}

// daySchedule returns the intern's active schedule for the weekday, or nil.
func (a *AttendanceServiceImpl) daySchedule(ctx context.Context, internID string, day time.Weekday) (*evaluator.DaySchedule, error) {
	sc, err := a.ScheduleRepository.GetActiveForDay(ctx, internID, day)
	if err != nil {
		if errors.Is(err, schedule.ErrScheduleNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	return sc.DaySchedule(), nil
}

func (a *AttendanceServiceImpl) lookupAddress(ctx context.Context, lat, lng float64) *string {
	ctx, cancel := context.WithTimeout(ctx, a.geocodeTimeout)
	defer cancel()

	address, err := a.geocoder.ReverseGeocode(ctx, lat, lng)
	if err != nil {
		slog.Warn("Reverse geocoding failed", "lat", lat, "lng", lng, "error", err)
		return nil
	}
	if address == "" {
		return nil
	}
	return &address
}

func (a *AttendanceServiceImpl) discardPhoto(ctx context.Context, key string) {
	if err := a.fileService.DeleteFile(context.WithoutCancel(ctx), key); err != nil {
		slog.Error("Failed to delete orphaned attendance photo", "key", key, "error", err)
	}
}

func (a *AttendanceServiceImpl) notify(ctx context.Context, n notification.Notification) {
	if a.notifier == nil || n.RecipientID == "" {
		return
	}
	if err := a.notifier.Notify(ctx, n); err != nil {
		slog.Warn("Failed to queue notification", "type", n.Type, "recipient", n.RecipientID, "error", err)
	}
}

func zoneError(err error) error {
	if errors.Is(err, evaluator.ErrInactiveZone) {
		return attendance.ErrInvalidGeofence
	}
	return err
}

func geofenceID(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	v := *id
	return &v
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

func showing(total int64, page, limit int) string {
	if total == 0 {
		return "0 of 0"
	}
	return fmt.Sprintf("%d-%d of %d", (page-1)*limit+1, min(page*limit, int(total)), total)
}
