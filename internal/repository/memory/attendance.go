package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/attendance"
)

type attendanceRepository struct{ s *Store }

func (s *Store) Attendance() attendance.AttendanceRepository { return attendanceRepository{s} }

func (r attendanceRepository) join(a attendance.Attendance) attendance.Attendance {
	if in, ok := r.s.interns[a.InternID]; ok {
		a.InternName = in.FullName
		a.InternStudentID = in.StudentID
		a.InternUserID = in.UserID
	}
	a.GeofenceName = nil
	if a.GeofenceLocationID != nil {
		if g, ok := r.s.geofences[*a.GeofenceLocationID]; ok {
			name := g.Name
			a.GeofenceName = &name
		}
	}
	return a
}

func (r attendanceRepository) Create(_ context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.attendance {
		if existing.InternID == a.InternID && sameDay(existing.Date, a.Date) {
			return attendance.Attendance{}, attendance.ErrDuplicateAttendance
		}
	}
	a.ID = newID()
	a.CreatedAt = r.s.now()
	a.UpdatedAt = a.CreatedAt
	r.s.attendance[a.ID] = a
	return r.join(a), nil
}

func (r attendanceRepository) GetByID(_ context.Context, id string) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.attendance[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return r.join(a), nil
}

func (r attendanceRepository) LockByID(ctx context.Context, id string) (attendance.Attendance, error) {
	return r.GetByID(ctx, id)
}

func (r attendanceRepository) GetByInternAndDate(_ context.Context, internID string, date time.Time) (*attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.attendance {
		if a.InternID == internID && sameDay(a.Date, date) {
			joined := r.join(a)
			return &joined, nil
		}
	}
	return nil, nil
}

func (r attendanceRepository) LockByInternAndDate(ctx context.Context, internID string, date time.Time) (*attendance.Attendance, error) {
	return r.GetByInternAndDate(ctx, internID, date)
}

func (r attendanceRepository) Update(_ context.Context, a attendance.Attendance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.attendance[a.ID]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	a.InternID = existing.InternID
	a.Date = existing.Date
	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = r.s.now()
	r.s.attendance[a.ID] = a
	return nil
}

func (r attendanceRepository) List(_ context.Context, f attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []attendance.Attendance
	for _, raw := range r.s.attendance {
		a := r.join(raw)
		day := a.Date.Format(dateLayout)
		switch {
		case f.InternID != nil && *f.InternID != "" && a.InternID != *f.InternID,
			f.InternName != nil && *f.InternName != "" && !strings.Contains(strings.ToLower(a.InternName), strings.ToLower(*f.InternName)),
			f.Date != nil && *f.Date != "" && day != *f.Date,
			f.StartDate != nil && *f.StartDate != "" && day < *f.StartDate,
			f.EndDate != nil && *f.EndDate != "" && day > *f.EndDate,
			f.Status != nil && *f.Status != "" && string(a.Status) != *f.Status,
			f.FlaggedOnly && !(a.IsLate || a.IsUndertime || a.IsOvertime):
			continue
		}
		out = append(out, a)
	}

	less := func(i, j int) bool { return out[i].Date.Before(out[j].Date) }
	switch f.SortBy {
	case "intern_name":
		less = func(i, j int) bool { return out[i].InternName < out[j].InternName }
	case "status":
		less = func(i, j int) bool { return out[i].Status < out[j].Status }
	case "clock_in_time":
		less = func(i, j int) bool { return timeOrZero(out[i].ClockInTime).Before(timeOrZero(out[j].ClockInTime)) }
	case "clock_out_time":
		less = func(i, j int) bool { return timeOrZero(out[i].ClockOutTime).Before(timeOrZero(out[j].ClockOutTime)) }
	case "total_hours":
		less = func(i, j int) bool { return floatOrZero(out[i].TotalHours) < floatOrZero(out[j].TotalHours) }
	}
	if strings.ToLower(f.SortOrder) == "asc" {
		sort.SliceStable(out, less)
	} else {
		sort.SliceStable(out, func(i, j int) bool { return less(j, i) })
	}

	return paginate(out, f.Page, f.Limit), int64(len(out)), nil
}

func (r attendanceRepository) ListOpenSessionsBefore(_ context.Context, date time.Time) ([]attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cutoff := date.Format(dateLayout)
	var out []attendance.Attendance
	for _, a := range r.s.attendance {
		if a.Date.Format(dateLayout) < cutoff && a.ClockInTime != nil && a.ClockOutTime == nil {
			out = append(out, r.join(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

func floatOrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
