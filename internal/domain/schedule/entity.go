package schedule

import (
	"time"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/evaluator"
)

type Schedule struct {
	ID            string
	InternID      string
	DayOfWeek     int // 0 = Sunday
	StartTime     evaluator.TimeOfDay
	EndTime       evaluator.TimeOfDay
	BreakDuration int // minutes
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Join
	InternName string
}

// DaySchedule converts the stored row into the evaluator's input.
func (s Schedule) DaySchedule() *evaluator.DaySchedule {
	return &evaluator.DaySchedule{
		DayOfWeek:            time.Weekday(s.DayOfWeek),
		StartTime:            s.StartTime,
		EndTime:              s.EndTime,
		BreakDurationMinutes: s.BreakDuration,
		Active:               s.IsActive,
	}
}
