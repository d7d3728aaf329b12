package evaluator

import (
	"math"
	"time"
)

// UndertimeOvertimeTolerance is the half-width, in hours, of the band
// around the scheduled hours that counts as neither undertime nor overtime.
const UndertimeOvertimeTolerance = 0.5

// HoursClassification flags a day's total hours against its schedule.
type HoursClassification struct {
	IsUndertime bool `json:"is_undertime"`
	IsOvertime  bool `json:"is_overtime"`
}

// ComputeHours returns the hours between clockIn and clockOut, minus the
// break when both break bounds are set, rounded to two decimals.
//
// The result is signed: a clockOut before clockIn yields a negative value.
func ComputeHours(clockIn, clockOut time.Time, breakStart, breakEnd *time.Time) float64 {
	totalMinutes := minutesBetween(clockIn, clockOut)
	if breakStart != nil && breakEnd != nil {
		totalMinutes -= minutesBetween(*breakStart, *breakEnd)
	}
	return roundHours(float64(totalMinutes) / 60)
}

// ClassifyHours compares totalHours with the schedule's expected hours
// using UndertimeOvertimeTolerance. Values exactly on the band edges are
// neither. A nil or inactive schedule yields no flags.
func ClassifyHours(totalHours float64, schedule *DaySchedule) HoursClassification {
	if schedule == nil || !schedule.Active {
		return HoursClassification{}
	}
	scheduled := schedule.ScheduledHours()
	return HoursClassification{
		IsUndertime: totalHours < scheduled-UndertimeOvertimeTolerance,
		IsOvertime:  totalHours > scheduled+UndertimeOvertimeTolerance,
	}
}

// minutesBetween counts whole minutes from a to b, truncated toward zero.
func minutesBetween(a, b time.Time) int {
	return int(b.Sub(a) / time.Minute)
}

func roundHours(h float64) float64 {
	return math.Round(h*100) / 100
}
