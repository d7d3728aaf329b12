package evaluator

import (
	"fmt"
	"time"
)

// GracePeriod is the window after the scheduled start during which a
// clock-in is still on time.
const GracePeriod = 15 * time.Minute

// TimeOfDay is a wall-clock time without a date, in seconds since midnight.
type TimeOfDay int

// NewTimeOfDay builds a TimeOfDay from an hour and minute.
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*3600 + minute*60)
}

// ParseTimeOfDay accepts "15:04" or "15:04:05".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second()), nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q: expected HH:MM", s)
}

func (t TimeOfDay) Hour() int   { return int(t) / 3600 }
func (t TimeOfDay) Minute() int { return int(t) % 3600 / 60 }
func (t TimeOfDay) Second() int { return int(t) % 60 }

// String formats as HH:MM, adding seconds only when they are set.
func (t TimeOfDay) String() string {
	if t.Second() != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
	}
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// On places t on the calendar day of day, in day's location.
func (t TimeOfDay) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), t.Second(), 0, day.Location())
}

// Sub returns the duration t-u.
func (t TimeOfDay) Sub(u TimeOfDay) time.Duration {
	return time.Duration(int(t)-int(u)) * time.Second
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(b []byte) error {
	parsed, err := ParseTimeOfDay(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// DaySchedule is an intern's expected working window for one weekday.
type DaySchedule struct {
	DayOfWeek            time.Weekday `json:"day_of_week"`
	StartTime            TimeOfDay    `json:"start_time"`
	EndTime              TimeOfDay    `json:"end_time"`
	BreakDurationMinutes int          `json:"break_duration_minutes"`
	Active               bool         `json:"active"`
}

// ScheduledHours is the expected working time net of the break.
func (s DaySchedule) ScheduledHours() float64 {
	return s.EndTime.Sub(s.StartTime).Minutes()/60 - float64(s.BreakDurationMinutes)/60
}

// IsLate reports whether clockIn is after the scheduled start plus
// GracePeriod. A nil or inactive schedule is never late. clockIn must be
// expressed in the location whose calendar day the schedule applies to.
func IsLate(clockIn time.Time, schedule *DaySchedule) bool {
	return IsLateWithGrace(clockIn, schedule, GracePeriod)
}

// IsLateWithGrace is IsLate with an explicit grace window.
func IsLateWithGrace(clockIn time.Time, schedule *DaySchedule, grace time.Duration) bool {
	if schedule == nil || !schedule.Active {
		return false
	}
	cutoff := schedule.StartTime.On(clockIn).Add(grace)
	return clockIn.After(cutoff)
}
