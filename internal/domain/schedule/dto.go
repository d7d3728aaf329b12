package schedule

import (
	"fmt"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/evaluator"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/validator"
)

var dayNames = [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

type CreateScheduleRequest struct {
	InternID      string `json:"intern_id"`
	DayOfWeek     int    `json:"day_of_week"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	BreakDuration int    `json:"break_duration"`
	IsActive      *bool  `json:"is_active"`
}

func (r *CreateScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.InternID) {
		errs = append(errs, validator.ValidationError{
			Field:   "intern_id",
			Message: "intern_id must be a valid UUID",
		})
	}
	errs = append(errs, validateDayAndTimes(r.DayOfWeek, r.StartTime, r.EndTime, r.BreakDuration)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateScheduleRequest struct {
	ID            string `json:"-"`
	DayOfWeek     int    `json:"day_of_week"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	BreakDuration int    `json:"break_duration"`
	IsActive      *bool  `json:"is_active"`
}

func (r *UpdateScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}
	errs = append(errs, validateDayAndTimes(r.DayOfWeek, r.StartTime, r.EndTime, r.BreakDuration)...)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// AssignDay is one weekday of a default schedule.
type AssignDay struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// AssignScheduleRequest applies the same weekly schedule to every active
// intern. The break length comes from the lunch window.
type AssignScheduleRequest struct {
	Name            string      `json:"name,omitempty"`
	Days            []AssignDay `json:"days"`
	LunchBreakStart string      `json:"lunch_break_start"`
	LunchBreakEnd   string      `json:"lunch_break_end"`
}

func (r *AssignScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	lunchOK := true
	if !validator.IsValidTimeOfDay(r.LunchBreakStart) {
		lunchOK = false
		errs = append(errs, validator.ValidationError{
			Field:   "lunch_break_start",
			Message: "lunch_break_start must be in HH:MM format",
		})
	}
	if !validator.IsValidTimeOfDay(r.LunchBreakEnd) {
		lunchOK = false
		errs = append(errs, validator.ValidationError{
			Field:   "lunch_break_end",
			Message: "lunch_break_end must be in HH:MM format",
		})
	}
	if lunchOK && r.BreakDuration() <= 0 {
		lunchOK = false
		errs = append(errs, validator.ValidationError{
			Field:   "lunch_break_end",
			Message: "lunch_break_end must be after lunch_break_start",
		})
	}

	if len(r.Days) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "days",
			Message: "days must contain at least one day",
		})
	}

	breakMinutes := 0
	if lunchOK {
		breakMinutes = r.BreakDuration()
	}
	seen := make(map[int]bool, len(r.Days))
	for i, d := range r.Days {
		for _, e := range validateDayAndTimes(d.DayOfWeek, d.StartTime, d.EndTime, breakMinutes) {
			e.Field = fmt.Sprintf("days[%d].%s", i, e.Field)
			errs = append(errs, e)
		}
		if seen[d.DayOfWeek] {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("days[%d].day_of_week", i),
				Message: "day_of_week must not repeat",
			})
		}
		seen[d.DayOfWeek] = true
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// BreakDuration is the lunch window in whole minutes.
func (r *AssignScheduleRequest) BreakDuration() int {
	start, err := evaluator.ParseTimeOfDay(r.LunchBreakStart)
	if err != nil {
		return 0
	}
	end, err := evaluator.ParseTimeOfDay(r.LunchBreakEnd)
	if err != nil {
		return 0
	}
	return int(end.Sub(start).Minutes())
}

type AssignScheduleResponse struct {
	SchedulesCreated int `json:"schedules_created"`
	SchedulesUpdated int `json:"schedules_updated"`
	InternsAffected  int `json:"interns_affected"`
}

type ScheduleResponse struct {
	ID             string  `json:"id"`
	InternID       string  `json:"intern_id"`
	InternName     string  `json:"intern_name,omitempty"`
	DayOfWeek      int     `json:"day_of_week"`
	DayName        string  `json:"day_name"`
	StartTime      string  `json:"start_time"`
	EndTime        string  `json:"end_time"`
	BreakDuration  int     `json:"break_duration"`
	ScheduledHours float64 `json:"scheduled_hours"`
	IsActive       bool    `json:"is_active"`
}

// DayName returns the English weekday name for 0..6.
func DayName(day int) string {
	if day < 0 || day >= len(dayNames) {
		return ""
	}
	return dayNames[day]
}

func validateDayAndTimes(day int, start, end string, breakMinutes int) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if day < 0 || day > 6 {
		errs = append(errs, validator.ValidationError{
			Field:   "day_of_week",
			Message: "day_of_week must be between 0 (Sunday) and 6 (Saturday)",
		})
	}

	startOK := validator.IsValidTimeOfDay(start)
	endOK := validator.IsValidTimeOfDay(end)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}

	if startOK && endOK {
		s, _ := evaluator.ParseTimeOfDay(start)
		e, _ := evaluator.ParseTimeOfDay(end)
		if e <= s {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must be after start_time",
			})
		} else if breakMinutes*60 >= int(e-s) {
			errs = append(errs, validator.ValidationError{
				Field:   "break_duration",
				Message: "break_duration must be shorter than the scheduled day",
			})
		}
	}

	if breakMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "break_duration",
			Message: "break_duration must not be negative",
		})
	}

	return errs
}
