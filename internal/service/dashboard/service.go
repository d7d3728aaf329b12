package dashboard

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/dashboard"
	"golang.org/x/sync/errgroup"
)

const recentActivityLimit = 10

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	loc *time.Location
	now func() time.Time
}

func NewDashboardService(repo dashboard.DashboardRepository, loc *time.Location) dashboard.DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		loc:                 loc,
		now:                 time.Now,
	}
}

// GetStats returns the overview counters using parallel goroutines, one
// query each.
func (s *DashboardServiceImpl) GetStats(ctx context.Context) (dashboard.StatsResponse, error) {
	now := s.now().In(s.loc)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var (
		totalInterns     int64
		activeToday      int64
		pendingApprovals int64
		pendingLeaves    int64
		activity         []dashboard.ActivityRecord
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.CountActiveInterns(gCtx)
		if err != nil {
			return fmt.Errorf("failed to count active interns: %w", err)
		}
		totalInterns = n
		return nil
	})

	g.Go(func() error {
		n, err := s.CountClockedIn(gCtx, today)
		if err != nil {
			return fmt.Errorf("failed to count clocked in interns: %w", err)
		}
		activeToday = n
		return nil
	})

	g.Go(func() error {
		n, err := s.CountPendingAttendance(gCtx)
		if err != nil {
			return fmt.Errorf("failed to count pending approvals: %w", err)
		}
		pendingApprovals = n
		return nil
	})

	g.Go(func() error {
		n, err := s.CountPendingLeaves(gCtx)
		if err != nil {
			return fmt.Errorf("failed to count pending leaves: %w", err)
		}
		pendingLeaves = n
		return nil
	})

	g.Go(func() error {
		records, err := s.RecentActivity(gCtx, recentActivityLimit)
		if err != nil {
			return fmt.Errorf("failed to get recent activity: %w", err)
		}
		activity = records
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.StatsResponse{}, err
	}

	var rate float64
	if totalInterns > 0 {
		rate = math.Round(float64(activeToday)/float64(totalInterns)*10000) / 100
	}

	return dashboard.StatsResponse{
		Date:             today.Format("2006-01-02"),
		TotalInterns:     totalInterns,
		ActiveToday:      activeToday,
		PendingApprovals: pendingApprovals,
		PendingLeaves:    pendingLeaves,
		AttendanceRate:   rate,
		RecentActivity:   s.toRecentActivity(activity),
	}, nil
}

func (s *DashboardServiceImpl) toRecentActivity(records []dashboard.ActivityRecord) []dashboard.RecentActivity {
	out := make([]dashboard.RecentActivity, 0, len(records))
	for _, r := range records {
		action, at := "clock_in", r.ClockInTime
		if r.ClockOutTime != nil {
			action, at = "clock_out", r.ClockOutTime
		}
		if at == nil {
			continue
		}
		out = append(out, dashboard.RecentActivity{
			AttendanceID: r.AttendanceID,
			InternName:   r.InternName,
			Action:       action,
			Time:         at.In(s.loc).Format(time.RFC3339),
			Status:       r.Status,
			IsLate:       r.IsLate,
			Location:     r.LocationAddress,
		})
	}
	return out
}
