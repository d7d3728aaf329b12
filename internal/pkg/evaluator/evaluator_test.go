package evaluator

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var manila = time.FixedZone("PHT", 8*3600)

func at(hour, minute int) time.Time {
	return time.Date(2025, time.March, 3, hour, minute, 0, 0, manila)
}

func ptr(t time.Time) *time.Time { return &t }

func weekdaySchedule() *DaySchedule {
	return &DaySchedule{
		DayOfWeek:            time.Monday,
		StartTime:            NewTimeOfDay(8, 0),
		EndTime:              NewTimeOfDay(17, 0),
		BreakDurationMinutes: 60,
		Active:               true,
	}
}

func TestDistance_SymmetricAndZeroOnSelf(t *testing.T) {
	points := []GeoPoint{
		{Latitude: 14.0, Longitude: 121.0},
		{Latitude: 14.5995, Longitude: 120.9842},
		{Latitude: -33.8688, Longitude: 151.2093},
		{Latitude: 89.9, Longitude: -179.9},
		{Latitude: 0, Longitude: 0},
	}

	for _, a := range points {
		assert.Equal(t, 0.0, Distance(a, a))
		for _, b := range points {
			assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-9)
		}
	}
}

func TestIsWithinZone_KnownDistance(t *testing.T) {
	zone := GeofenceZone{Center: GeoPoint{Latitude: 14.0, Longitude: 121.0}, RadiusMeters: 100, Active: true}

	distance, ok := IsWithinZone(GeoPoint{Latitude: 14.0005, Longitude: 121.0}, zone)

	assert.True(t, ok)
	assert.InDelta(t, 55.6, distance, 0.5)
}

func TestIsWithinZone_BoundaryInclusive(t *testing.T) {
	center := GeoPoint{Latitude: 14.0, Longitude: 121.0}

	distance, ok := IsWithinZone(center, GeofenceZone{Center: center, RadiusMeters: 0, Active: true})
	assert.Equal(t, 0.0, distance)
	assert.True(t, ok, "distance equal to radius is inside")

	point := GeoPoint{Latitude: 14.001, Longitude: 121.001}
	d := Distance(point, center)

	_, inside := IsWithinZone(point, GeofenceZone{Center: center, RadiusMeters: int(math.Ceil(d))})
	_, outside := IsWithinZone(point, GeofenceZone{Center: center, RadiusMeters: int(math.Floor(d))})
	assert.True(t, inside)
	assert.False(t, outside)
}

func TestIsWithinZone_Idempotent(t *testing.T) {
	zone := GeofenceZone{Center: GeoPoint{Latitude: 14.0, Longitude: 121.0}, RadiusMeters: 50, Active: true}
	point := GeoPoint{Latitude: 14.0004, Longitude: 121.0003}

	d1, ok1 := IsWithinZone(point, zone)
	d2, ok2 := IsWithinZone(point, zone)

	assert.Equal(t, d1, d2)
	assert.Equal(t, ok1, ok2)
}

func TestGeoPoint_Valid(t *testing.T) {
	cases := []struct {
		point GeoPoint
		want  bool
	}{
		{GeoPoint{Latitude: 0, Longitude: 0}, true},
		{GeoPoint{Latitude: 90, Longitude: 180}, true},
		{GeoPoint{Latitude: -90, Longitude: -180}, true},
		{GeoPoint{Latitude: 90.01, Longitude: 0}, false},
		{GeoPoint{Latitude: 0, Longitude: -180.5}, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.point.Valid(), "%+v", c.point)
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tod, err := ParseTimeOfDay("08:30")
	require.NoError(t, err)
	assert.Equal(t, NewTimeOfDay(8, 30), tod)
	assert.Equal(t, "08:30", tod.String())

	tod, err = ParseTimeOfDay("17:00:45")
	require.NoError(t, err)
	assert.Equal(t, 17, tod.Hour())
	assert.Equal(t, 45, tod.Second())
	assert.Equal(t, "17:00:45", tod.String())

	_, err = ParseTimeOfDay("25:00")
	assert.Error(t, err)
	_, err = ParseTimeOfDay("eight")
	assert.Error(t, err)
}

func TestIsLate(t *testing.T) {
	schedule := weekdaySchedule()

	cases := []struct {
		name    string
		clockIn time.Time
		want    bool
	}{
		{"before start", at(7, 55), false},
		{"within grace", at(8, 10), false},
		{"exactly at cutoff", at(8, 15), false},
		{"after cutoff", at(8, 20), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, IsLate(c.clockIn, schedule))
		})
	}
}

func TestIsLate_NoScheduleIsNeverLate(t *testing.T) {
	assert.False(t, IsLate(at(23, 59), nil))

	inactive := weekdaySchedule()
	inactive.Active = false
	assert.False(t, IsLate(at(10, 0), inactive))
}

func TestIsLateWithGrace(t *testing.T) {
	schedule := weekdaySchedule()
	assert.True(t, IsLateWithGrace(at(8, 1), schedule, 0))
	assert.False(t, IsLateWithGrace(at(8, 20), schedule, 30*time.Minute))
}

func TestComputeHours(t *testing.T) {
	t.Run("full day with break", func(t *testing.T) {
		got := ComputeHours(at(8, 0), at(17, 0), ptr(at(12, 0)), ptr(at(13, 0)))
		assert.Equal(t, 8.0, got)
	})

	t.Run("break ignored when only one bound set", func(t *testing.T) {
		assert.Equal(t, 9.0, ComputeHours(at(8, 0), at(17, 0), ptr(at(12, 0)), nil))
		assert.Equal(t, 9.0, ComputeHours(at(8, 0), at(17, 0), nil, ptr(at(13, 0))))
	})

	t.Run("rounded to two decimals", func(t *testing.T) {
		// 500 minutes = 8.3333h
		assert.Equal(t, 8.33, ComputeHours(at(8, 0), at(16, 20), nil, nil))
		// 490 minutes = 8.1666h
		assert.Equal(t, 8.17, ComputeHours(at(8, 0), at(16, 10), nil, nil))
	})

	t.Run("partial minutes truncated", func(t *testing.T) {
		out := at(9, 0).Add(59 * time.Second)
		assert.Equal(t, 1.0, ComputeHours(at(8, 0), out, nil, nil))
	})

	t.Run("swapped bounds are negative, not clamped", func(t *testing.T) {
		assert.Equal(t, -9.0, ComputeHours(at(17, 0), at(8, 0), nil, nil))
	})

	t.Run("idempotent", func(t *testing.T) {
		a := ComputeHours(at(8, 7), at(16, 52), ptr(at(12, 0)), ptr(at(12, 45)))
		b := ComputeHours(at(8, 7), at(16, 52), ptr(at(12, 0)), ptr(at(12, 45)))
		assert.Equal(t, a, b)
	})
}

func TestDaySchedule_ScheduledHours(t *testing.T) {
	assert.Equal(t, 8.0, weekdaySchedule().ScheduledHours())

	noBreak := weekdaySchedule()
	noBreak.BreakDurationMinutes = 0
	assert.Equal(t, 9.0, noBreak.ScheduledHours())
}

func TestClassifyHours(t *testing.T) {
	schedule := weekdaySchedule()

	cases := []struct {
		total     float64
		undertime bool
		overtime  bool
	}{
		{8.0, false, false},
		{7.5, false, false},
		{7.49, true, false},
		{7.4, true, false},
		{8.5, false, false},
		{8.51, false, true},
		{0, true, false},
	}
	for _, c := range cases {
		got := ClassifyHours(c.total, schedule)
		assert.Equal(t, c.undertime, got.IsUndertime, "undertime for %.2f", c.total)
		assert.Equal(t, c.overtime, got.IsOvertime, "overtime for %.2f", c.total)
	}
}

func TestClassifyHours_NoSchedule(t *testing.T) {
	assert.Equal(t, HoursClassification{}, ClassifyHours(2, nil))
	assert.Equal(t, HoursClassification{}, ClassifyHours(14, nil))
}

func TestEvaluateClockIn(t *testing.T) {
	zone := &GeofenceZone{Center: GeoPoint{Latitude: 14.0, Longitude: 121.0}, RadiusMeters: 100, Active: true}

	t.Run("inside zone and late", func(t *testing.T) {
		res, err := EvaluateClockIn(ClockEvent{
			Timestamp: at(8, 20),
			Location:  GeoPoint{Latitude: 14.0005, Longitude: 121.0},
			Zone:      zone,
		}, weekdaySchedule())
		require.NoError(t, err)
		require.NotNil(t, res.DistanceMeters)
		assert.True(t, res.IsLate)
	})

	t.Run("outside zone carries distance", func(t *testing.T) {
		_, err := EvaluateClockIn(ClockEvent{
			Timestamp: at(8, 0),
			Location:  GeoPoint{Latitude: 14.01, Longitude: 121.0},
			Zone:      zone,
		}, nil)

		var violation *ZoneViolationError
		require.True(t, errors.As(err, &violation))
		assert.True(t, errors.Is(err, ErrOutsideZone))
		assert.InDelta(t, 1112, violation.DistanceMeters, 2)
		assert.Equal(t, 100, violation.RadiusMeters)
	})

	t.Run("inactive zone rejected", func(t *testing.T) {
		inactive := *zone
		inactive.Active = false
		_, err := EvaluateClockIn(ClockEvent{Timestamp: at(8, 0), Zone: &inactive}, nil)
		assert.ErrorIs(t, err, ErrInactiveZone)
	})

	t.Run("no zone skips the distance check", func(t *testing.T) {
		res, err := EvaluateClockIn(ClockEvent{Timestamp: at(8, 0)}, nil)
		require.NoError(t, err)
		assert.Nil(t, res.DistanceMeters)
		assert.False(t, res.IsLate)
	})
}

func TestEvaluateClockOut(t *testing.T) {
	res, err := EvaluateClockOut(at(8, 0), ClockEvent{Timestamp: at(19, 0)}, ptr(at(12, 0)), ptr(at(13, 0)), weekdaySchedule())

	require.NoError(t, err)
	assert.Equal(t, 10.0, res.TotalHours)
	assert.True(t, res.IsOvertime)
	assert.False(t, res.IsUndertime)
}
