package memory

import (
	"context"
	"sort"
	"time"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/intern"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/schedule"
)

type scheduleRepository struct{ s *Store }

func (s *Store) Schedules() schedule.ScheduleRepository { return scheduleRepository{s} }

func (r scheduleRepository) withName(sc schedule.Schedule) schedule.Schedule {
	sc.InternName = r.s.interns[sc.InternID].FullName
	return sc
}

func (r scheduleRepository) Upsert(_ context.Context, sc schedule.Schedule) (schedule.Schedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.interns[sc.InternID]; !ok {
		return schedule.Schedule{}, intern.ErrInternNotFound
	}
	now := r.s.now()
	for id, existing := range r.s.schedules {
		if existing.InternID == sc.InternID && existing.DayOfWeek == sc.DayOfWeek {
			sc.ID = id
			sc.CreatedAt = existing.CreatedAt
			sc.UpdatedAt = now
			r.s.schedules[id] = sc
			return r.withName(sc), nil
		}
	}
	sc.ID = newID()
	sc.CreatedAt = now
	sc.UpdatedAt = now
	r.s.schedules[sc.ID] = sc
	return r.withName(sc), nil
}

func (r scheduleRepository) GetByID(_ context.Context, id string) (schedule.Schedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sc, ok := r.s.schedules[id]
	if !ok {
		return schedule.Schedule{}, schedule.ErrScheduleNotFound
	}
	return r.withName(sc), nil
}

func (r scheduleRepository) GetActiveForDay(_ context.Context, internID string, day time.Weekday) (schedule.Schedule, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, sc := range r.s.schedules {
		if sc.InternID == internID && sc.DayOfWeek == int(day) && sc.IsActive {
			return r.withName(sc), nil
		}
	}
	return schedule.Schedule{}, schedule.ErrScheduleNotFound
}

func (r scheduleRepository) list(keep func(schedule.Schedule) bool) []schedule.Schedule {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []schedule.Schedule
	for _, sc := range r.s.schedules {
		if keep(sc) {
			out = append(out, r.withName(sc))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].InternName != out[j].InternName {
			return out[i].InternName < out[j].InternName
		}
		return out[i].DayOfWeek < out[j].DayOfWeek
	})
	return out
}

func (r scheduleRepository) ListByIntern(_ context.Context, internID string) ([]schedule.Schedule, error) {
	return r.list(func(sc schedule.Schedule) bool { return sc.InternID == internID }), nil
}

func (r scheduleRepository) List(_ context.Context) ([]schedule.Schedule, error) {
	return r.list(func(schedule.Schedule) bool { return true }), nil
}

func (r scheduleRepository) Update(_ context.Context, sc schedule.Schedule) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.schedules[sc.ID]
	if !ok {
		return schedule.ErrScheduleNotFound
	}
	for id, other := range r.s.schedules {
		if id != sc.ID && other.InternID == existing.InternID && other.DayOfWeek == sc.DayOfWeek {
			return schedule.ErrScheduleExists
		}
	}
	sc.InternID = existing.InternID
	sc.CreatedAt = existing.CreatedAt
	sc.UpdatedAt = r.s.now()
	r.s.schedules[sc.ID] = sc
	return nil
}

func (r scheduleRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.schedules[id]; !ok {
		return schedule.ErrScheduleNotFound
	}
	delete(r.s.schedules, id)
	return nil
}
