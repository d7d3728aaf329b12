package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create inserts a record. A second record for the same intern and date
	// fails with ErrDuplicateAttendance.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByInternAndDate returns nil when the intern has no record that day.
	GetByInternAndDate(ctx context.Context, internID string, date time.Time) (*Attendance, error)

	// LockByInternAndDate is GetByInternAndDate with a row lock held until
	// the surrounding transaction ends.
	LockByInternAndDate(ctx context.Context, internID string, date time.Time) (*Attendance, error)

	// LockByID reads a record under a row lock.
	LockByID(ctx context.Context, id string) (Attendance, error)

	Update(ctx context.Context, attendance Attendance) error

	List(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// ListOpenSessionsBefore returns records dated before date that have a
	// clock-in and no clock-out.
	ListOpenSessionsBefore(ctx context.Context, date time.Time) ([]Attendance, error)
}
