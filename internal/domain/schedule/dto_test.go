package schedule

import (
	"testing"
	"time"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/evaluator"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const internID = "0b9f3c1e-5a0e-4f8e-9a61-0f5c2b1d7e11"

func TestCreateScheduleRequest_Validate(t *testing.T) {
	cases := []struct {
		name     string
		req      CreateScheduleRequest
		badField string
	}{
		{"valid", CreateScheduleRequest{InternID: internID, DayOfWeek: 1, StartTime: "08:00", EndTime: "17:00", BreakDuration: 60}, ""},
		{"sunday ok", CreateScheduleRequest{InternID: internID, DayOfWeek: 0, StartTime: "09:00", EndTime: "12:00"}, ""},
		{"bad day", CreateScheduleRequest{InternID: internID, DayOfWeek: 7, StartTime: "08:00", EndTime: "17:00"}, "day_of_week"},
		{"end before start", CreateScheduleRequest{InternID: internID, DayOfWeek: 1, StartTime: "17:00", EndTime: "08:00"}, "end_time"},
		{"equal times", CreateScheduleRequest{InternID: internID, DayOfWeek: 1, StartTime: "08:00", EndTime: "08:00"}, "end_time"},
		{"bad format", CreateScheduleRequest{InternID: internID, DayOfWeek: 1, StartTime: "8am", EndTime: "17:00"}, "start_time"},
		{"break too long", CreateScheduleRequest{InternID: internID, DayOfWeek: 1, StartTime: "08:00", EndTime: "09:00", BreakDuration: 60}, "break_duration"},
		{"negative break", CreateScheduleRequest{InternID: internID, DayOfWeek: 1, StartTime: "08:00", EndTime: "17:00", BreakDuration: -1}, "break_duration"},
		{"bad intern", CreateScheduleRequest{InternID: "x", DayOfWeek: 1, StartTime: "08:00", EndTime: "17:00"}, "intern_id"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.req.Validate()
			if c.badField == "" {
				assert.NoError(t, err)
				return
			}
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), c.badField)
		})
	}
}

func TestSchedule_DaySchedule(t *testing.T) {
	s := Schedule{
		DayOfWeek:     3,
		StartTime:     evaluator.NewTimeOfDay(8, 0),
		EndTime:       evaluator.NewTimeOfDay(17, 0),
		BreakDuration: 60,
		IsActive:      true,
	}
	ds := s.DaySchedule()

	assert.Equal(t, time.Wednesday, ds.DayOfWeek)
	assert.Equal(t, 8.0, ds.ScheduledHours())
	assert.True(t, ds.Active)
}

func TestDayName(t *testing.T) {
	assert.Equal(t, "Sunday", DayName(0))
	assert.Equal(t, "Saturday", DayName(6))
	assert.Equal(t, "", DayName(7))
}
