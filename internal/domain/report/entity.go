package report

import "time"

// AttendanceRow is an attendance record joined with its intern.
type AttendanceRow struct {
	AttendanceID    string
	InternID        string
	InternName      string
	StudentID       string
	CompanyName     *string
	Date            time.Time
	ClockInTime     *time.Time
	ClockOutTime    *time.Time
	TotalHours      *float64
	Status          string
	IsLate          bool
	IsUndertime     bool
	IsOvertime      bool
	LocationAddress *string
}

// InternRef is the minimal intern projection used by absence reports.
type InternRef struct {
	ID        string
	FullName  string
	StudentID string
}

// RowFilter narrows the attendance rows a report reads.
type RowFilter struct {
	From          time.Time
	To            time.Time
	InternID      *string
	ClockedInOnly bool
	ApprovedOnly  bool
	LateOnly      bool
}
