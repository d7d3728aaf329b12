package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/attendance"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/dashboard"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/notification"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/schedule"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/user"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/database"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/email"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/evaluator"
)

const (
	autoClosedNote = "auto closed"
	dateLayout     = "2006-01-02"

	// DefaultDigestHour is the local hour after which the daily digest goes out
	DefaultDigestHour = 8
)

// TokenPurger removes expired refresh tokens.
type TokenPurger interface {
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

type AttendanceJobs struct {
	tx              database.Transactor
	attendanceRepo  attendance.AttendanceRepository
	scheduleRepo    schedule.ScheduleRepository
	dashboardRepo   dashboard.DashboardRepository
	userRepo        user.UserRepository
	tokens          TokenPurger
	emailSvc        email.EmailService
	notificationSvc notification.Service

	recipients []string
	digestHour int
	loc        *time.Location
	now        func() time.Time

	mu             sync.Mutex
	lastDigestDate string
}

// AttendanceJobsConfig carries the job settings that come from configuration.
type AttendanceJobsConfig struct {
	// Recipients overrides the digest audience. Empty means every admin and supervisor.
	Recipients []string
	DigestHour int
	Location   *time.Location
}

func NewAttendanceJobs(
	tx database.Transactor,
	attendanceRepo attendance.AttendanceRepository,
	scheduleRepo schedule.ScheduleRepository,
	dashboardRepo dashboard.DashboardRepository,
	userRepo user.UserRepository,
	tokens TokenPurger,
	emailSvc email.EmailService,
	notificationSvc notification.Service,
	cfg AttendanceJobsConfig,
) *AttendanceJobs {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.DigestHour <= 0 || cfg.DigestHour > 23 {
		cfg.DigestHour = DefaultDigestHour
	}
	return &AttendanceJobs{
		tx:              tx,
		attendanceRepo:  attendanceRepo,
		scheduleRepo:    scheduleRepo,
		dashboardRepo:   dashboardRepo,
		userRepo:        userRepo,
		tokens:          tokens,
		emailSvc:        emailSvc,
		notificationSvc: notificationSvc,
		recipients:      cfg.Recipients,
		digestHour:      cfg.DigestHour,
		loc:             cfg.Location,
		now:             time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_open_sessions", 1*time.Hour, j.AutoCloseOpenSessions)
	scheduler.AddJob("pending_approvals_digest", 15*time.Minute, j.SendPendingDigest)
	if j.tokens != nil {
		scheduler.AddJob("purge_expired_refresh_tokens", 24*time.Hour, j.PurgeExpiredTokens)
	}
}

// AutoCloseOpenSessions closes records from previous days that were never
// clocked out. The clock-out is set to the scheduled end of that day, or to
// the clock-in when the intern had no schedule.
func (j *AttendanceJobs) AutoCloseOpenSessions(ctx context.Context) error {
	now := j.now().In(j.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	sessions, err := j.attendanceRepo.ListOpenSessionsBefore(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to list open sessions: %w", err)
	}

	if len(sessions) == 0 {
		slog.Debug("Cron: No open sessions to close")
		return nil
	}

	closedCount := 0
	for _, session := range sessions {
		closed, err := j.closeSession(ctx, session.ID)
		if err != nil {
			slog.Error("Cron: Failed to auto-close attendance",
				"attendance_id", session.ID,
				"intern_id", session.InternID,
				"error", err)
			continue
		}
		if closed == nil {
			continue
		}

		j.notify(ctx, notification.Notification{
			RecipientID: closed.InternUserID,
			Type:        notification.TypeAttendanceAutoClosed,
			Title:       "Attendance auto-closed",
			Message:     fmt.Sprintf("Your attendance for %s was closed automatically because no clock-out was recorded", closed.Date.Format(dateLayout)),
			Data: map[string]interface{}{
				"attendance_id": closed.ID,
				"date":          closed.Date.Format(dateLayout),
			},
		})
		closedCount++
	}

	slog.Info("Cron: Auto-closed open sessions", "count", closedCount, "found", len(sessions))
	return nil
}

// closeSession returns nil when the record was closed by someone else first.
func (j *AttendanceJobs) closeSession(ctx context.Context, id string) (*attendance.Attendance, error) {
	var closed *attendance.Attendance
	err := j.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		record, err := j.attendanceRepo.LockByID(txCtx, id)
		if err != nil {
			return err
		}
		if !record.HasClockedIn() || record.HasClockedOut() {
			return nil
		}

		var daySchedule *evaluator.DaySchedule
		sc, err := j.scheduleRepo.GetActiveForDay(txCtx, record.InternID, record.Date.Weekday())
		switch {
		case err == nil:
			daySchedule = sc.DaySchedule()
		case !errors.Is(err, schedule.ErrScheduleNotFound):
			return fmt.Errorf("failed to get schedule: %w", err)
		}

		clockIn := *record.ClockInTime
		closeAt := clockIn
		if daySchedule != nil {
			localDay := time.Date(record.Date.Year(), record.Date.Month(), record.Date.Day(), 0, 0, 0, 0, j.loc)
			if end := daySchedule.EndTime.On(localDay); end.After(clockIn) {
				closeAt = end
			}
		}

		note := autoClosedNote
		if record.BreakStart != nil && record.BreakEnd == nil {
			if record.BreakStart.Before(closeAt) {
				record.BreakEnd = &closeAt
			} else {
				// break opened at or after the close time
				record.BreakStart = nil
				note = autoClosedNote + ", open break discarded"
			}
		}

		result, err := evaluator.EvaluateClockOut(clockIn, evaluator.ClockEvent{Timestamp: closeAt}, record.BreakStart, record.BreakEnd, daySchedule)
		if err != nil {
			return err
		}

		if record.Notes != nil && *record.Notes != "" {
			note = *record.Notes + "; " + note
		}

		record.ClockOutTime = &closeAt
		record.TotalHours = &result.TotalHours
		record.IsUndertime = result.IsUndertime
		record.IsOvertime = result.IsOvertime
		record.Notes = &note

		if err := j.attendanceRepo.Update(txCtx, record); err != nil {
			return fmt.Errorf("failed to update attendance: %w", err)
		}
		closed = &record
		return nil
	})
	return closed, err
}

// SendPendingDigest mails the pending attendance and leave counts once per
// local day, after the configured hour.
func (j *AttendanceJobs) SendPendingDigest(ctx context.Context) error {
	if j.emailSvc == nil {
		return nil
	}

	now := j.now().In(j.loc)
	today := now.Format(dateLayout)
	if now.Hour() < j.digestHour {
		return nil
	}

	j.mu.Lock()
	alreadySent := j.lastDigestDate == today
	j.mu.Unlock()
	if alreadySent {
		return nil
	}

	pendingAttendance, err := j.dashboardRepo.CountPendingAttendance(ctx)
	if err != nil {
		return fmt.Errorf("failed to count pending attendance: %w", err)
	}
	pendingLeaves, err := j.dashboardRepo.CountPendingLeaves(ctx)
	if err != nil {
		return fmt.Errorf("failed to count pending leaves: %w", err)
	}

	if pendingAttendance == 0 && pendingLeaves == 0 {
		slog.Debug("Cron: Nothing pending, skipping digest")
		j.markDigestSent(today)
		return nil
	}

	recipients := j.recipients
	if len(recipients) == 0 {
		recipients, err = j.userRepo.ListEmailsByRole(ctx, user.RoleAdmin, user.RoleSupervisor)
		if err != nil {
			return fmt.Errorf("failed to list digest recipients: %w", err)
		}
	}
	if len(recipients) == 0 {
		slog.Warn("Cron: No digest recipients found")
		j.markDigestSent(today)
		return nil
	}

	if err := j.emailSvc.SendPendingDigest(recipients, email.DigestData{
		Date:              today,
		PendingAttendance: pendingAttendance,
		PendingLeaves:     pendingLeaves,
	}); err != nil {
		return fmt.Errorf("failed to send pending digest: %w", err)
	}

	j.markDigestSent(today)
	slog.Info("Cron: Pending approvals digest sent",
		"recipients", len(recipients),
		"pending_attendance", pendingAttendance,
		"pending_leaves", pendingLeaves)
	return nil
}

func (j *AttendanceJobs) markDigestSent(day string) {
	j.mu.Lock()
	j.lastDigestDate = day
	j.mu.Unlock()
}

// PurgeExpiredTokens deletes refresh tokens that expired over a day ago.
func (j *AttendanceJobs) PurgeExpiredTokens(ctx context.Context) error {
	deleted, err := j.tokens.DeleteExpired(ctx, j.now().Add(-24*time.Hour))
	if err != nil {
		return fmt.Errorf("failed to purge expired refresh tokens: %w", err)
	}
	if deleted > 0 {
		slog.Info("Cron: Purged expired refresh tokens", "count", deleted)
	}
	return nil
}

func (j *AttendanceJobs) notify(ctx context.Context, n notification.Notification) {
	if j.notificationSvc == nil || n.RecipientID == "" {
		return
	}
	if err := j.notificationSvc.Notify(ctx, n); err != nil {
		slog.Warn("Cron: Failed to queue notification", "type", n.Type, "error", err)
	}
}
