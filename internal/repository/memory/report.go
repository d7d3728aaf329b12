package memory

import (
	"context"
	"sort"
	"time"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/attendance"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/dashboard"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/report"
)

type reportRepository struct{ s *Store }

func (s *Store) Reports() report.ReportRepository { return reportRepository{s} }

func (r reportRepository) ListAttendanceRows(_ context.Context, f report.RowFilter) ([]report.AttendanceRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lo, hi := f.From.Format(dateLayout), f.To.Format(dateLayout)
	var out []report.AttendanceRow
	for _, a := range r.s.attendance {
		day := a.Date.Format(dateLayout)
		switch {
		case day < lo || day > hi,
			f.InternID != nil && *f.InternID != "" && a.InternID != *f.InternID,
			f.ClockedInOnly && a.ClockInTime == nil,
			f.ApprovedOnly && a.Status != attendance.StatusApproved,
			f.LateOnly && !a.IsLate:
			continue
		}
		in := r.s.interns[a.InternID]
		out = append(out, report.AttendanceRow{
			AttendanceID:    a.ID,
			InternID:        a.InternID,
			InternName:      in.FullName,
			StudentID:       in.StudentID,
			CompanyName:     in.CompanyName,
			Date:            a.Date,
			ClockInTime:     a.ClockInTime,
			ClockOutTime:    a.ClockOutTime,
			TotalHours:      a.TotalHours,
			Status:          string(a.Status),
			IsLate:          a.IsLate,
			IsUndertime:     a.IsUndertime,
			IsOvertime:      a.IsOvertime,
			LocationAddress: a.LocationAddress,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !sameDay(out[i].Date, out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return timeOrZero(out[i].ClockInTime).Before(timeOrZero(out[j].ClockInTime))
	})
	return out, nil
}

func (r reportRepository) ListActiveInterns(_ context.Context) ([]report.InternRef, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []report.InternRef
	for _, in := range r.s.interns {
		if in.IsActive {
			out = append(out, report.InternRef{ID: in.ID, FullName: in.FullName, StudentID: in.StudentID})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, nil
}

func (r reportRepository) ListClockedInDays(_ context.Context, from, to time.Time) (map[string]map[string]struct{}, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lo, hi := from.Format(dateLayout), to.Format(dateLayout)
	days := make(map[string]map[string]struct{})
	for _, a := range r.s.attendance {
		day := a.Date.Format(dateLayout)
		if a.ClockInTime == nil || day < lo || day > hi {
			continue
		}
		if days[a.InternID] == nil {
			days[a.InternID] = make(map[string]struct{})
		}
		days[a.InternID][day] = struct{}{}
	}
	return days, nil
}

type dashboardRepository struct{ s *Store }

func (s *Store) Dashboard() dashboard.DashboardRepository { return dashboardRepository{s} }

func (r dashboardRepository) CountActiveInterns(ctx context.Context) (int64, error) {
	return r.s.Interns().CountActive(ctx)
}

func (r dashboardRepository) CountClockedIn(_ context.Context, date time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, a := range r.s.attendance {
		if sameDay(a.Date, date) && a.ClockInTime != nil {
			n++
		}
	}
	return n, nil
}

func (r dashboardRepository) CountPendingAttendance(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, a := range r.s.attendance {
		if a.Status == attendance.StatusPending && a.ClockOutTime != nil {
			n++
		}
	}
	return n, nil
}

func (r dashboardRepository) CountPendingLeaves(ctx context.Context) (int64, error) {
	return r.s.Leaves().CountPending(ctx)
}

func (r dashboardRepository) RecentActivity(_ context.Context, limit int) ([]dashboard.ActivityRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []dashboard.ActivityRecord
	for _, a := range r.s.attendance {
		if a.ClockInTime == nil {
			continue
		}
		out = append(out, dashboard.ActivityRecord{
			AttendanceID:    a.ID,
			InternName:      r.s.interns[a.InternID].FullName,
			ClockInTime:     a.ClockInTime,
			ClockOutTime:    a.ClockOutTime,
			Status:          string(a.Status),
			IsLate:          a.IsLate,
			LocationAddress: a.LocationAddress,
		})
	}
	latest := func(rec dashboard.ActivityRecord) time.Time {
		if rec.ClockOutTime != nil {
			return *rec.ClockOutTime
		}
		return *rec.ClockInTime
	}
	sort.Slice(out, func(i, j int) bool { return latest(out[i]).After(latest(out[j])) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
