package attendance

import "errors"

// Attendance domain errors
var (
	// Clock errors
	ErrAlreadyClockedIn    = errors.New("you have already clocked in today")
	ErrNotClockedIn        = errors.New("you must clock in first")
	ErrAlreadyClockedOut   = errors.New("you have already clocked out today")
	ErrInvalidGeofence     = errors.New("invalid geofence location")
	ErrBreakAlreadyStarted = errors.New("break has already started")
	ErrBreakNotStarted     = errors.New("break has not started")
	ErrBreakAlreadyEnded   = errors.New("break has already ended")

	// Returned by the repository when (intern_id, date) already exists
	ErrDuplicateAttendance = errors.New("attendance record already exists for this date")

	// General errors
	ErrAttendanceNotFound         = errors.New("attendance record not found")
	ErrUnauthorized               = errors.New("unauthorized to access this attendance record")
	ErrAttendanceAlreadyProcessed = errors.New("attendance has already been approved or rejected")
)
