package evaluator

import "time"

// ClockEvent is a single clock-in or clock-out attempt.
type ClockEvent struct {
	Timestamp time.Time
	Location  GeoPoint
	// Zone is the geofence the event must fall inside, if one was selected.
	Zone *GeofenceZone
}

// ClockInResult is what a clock-in evaluation derives for persistence.
type ClockInResult struct {
	DistanceMeters *float64
	IsLate         bool
}

// ClockOutResult is what a clock-out evaluation derives for persistence.
type ClockOutResult struct {
	DistanceMeters *float64
	TotalHours     float64
	HoursClassification
}

// CheckZone tests the event's location against its zone, if any. It
// returns the measured distance, or a *ZoneViolationError when the point is
// outside the radius.
func CheckZone(event ClockEvent) (*float64, error) {
	if event.Zone == nil {
		return nil, nil
	}
	if !event.Zone.Active {
		return nil, ErrInactiveZone
	}
	distance, ok := IsWithinZone(event.Location, *event.Zone)
	if !ok {
		return &distance, &ZoneViolationError{DistanceMeters: distance, RadiusMeters: event.Zone.RadiusMeters}
	}
	return &distance, nil
}

// EvaluateClockIn checks the zone and derives the lateness flag.
func EvaluateClockIn(event ClockEvent, schedule *DaySchedule) (ClockInResult, error) {
	distance, err := CheckZone(event)
	if err != nil {
		return ClockInResult{DistanceMeters: distance}, err
	}
	return ClockInResult{
		DistanceMeters: distance,
		IsLate:         IsLate(event.Timestamp, schedule),
	}, nil
}

// EvaluateClockOut checks the zone, computes hours since clockIn net of
// any break, and classifies them against the schedule.
func EvaluateClockOut(clockIn time.Time, event ClockEvent, breakStart, breakEnd *time.Time, schedule *DaySchedule) (ClockOutResult, error) {
	distance, err := CheckZone(event)
	if err != nil {
		return ClockOutResult{DistanceMeters: distance}, err
	}
	total := ComputeHours(clockIn, event.Timestamp, breakStart, breakEnd)
	return ClockOutResult{
		DistanceMeters:      distance,
		TotalHours:          total,
		HoursClassification: ClassifyHours(total, schedule),
	}, nil
}
