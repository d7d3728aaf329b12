package attendance

import (
	"time"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type ClockInMethod string

const (
	ClockInMethodWeb    ClockInMethod = "web"
	ClockInMethodQRCode ClockInMethod = "qr_code"
	ClockInMethodManual ClockInMethod = "manual"
)

type Attendance struct {
	ID                 string
	InternID           string
	Date               time.Time
	ClockInTime        *time.Time
	ClockOutTime       *time.Time
	ClockInLatitude    *float64
	ClockInLongitude   *float64
	ClockOutLatitude   *float64
	ClockOutLongitude  *float64
	ClockInPhoto       *string
	ClockOutPhoto      *string
	LocationAddress    *string
	GeofenceLocationID *string
	ClockInMethod      ClockInMethod
	BreakStart         *time.Time
	BreakEnd           *time.Time
	TotalHours         *float64
	IsLate             bool
	IsUndertime        bool
	IsOvertime         bool
	Status             Status
	Notes              *string
	ApprovedBy         *string
	ApprovedAt         *time.Time
	RejectionReason    *string
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Join
	InternName      string
	InternStudentID string
	InternUserID    string
	GeofenceName    *string
}

func (a *Attendance) HasClockedIn() bool {
	return a.ClockInTime != nil
}

func (a *Attendance) HasClockedOut() bool {
	return a.ClockOutTime != nil
}

// CanClockIn reports ErrAlreadyClockedIn once the day's clock-in is set.
func (a *Attendance) CanClockIn() error {
	if a.HasClockedIn() {
		return ErrAlreadyClockedIn
	}
	return nil
}

// CanClockOut requires a clock-in and no prior clock-out.
func (a *Attendance) CanClockOut() error {
	if !a.HasClockedIn() {
		return ErrNotClockedIn
	}
	if a.HasClockedOut() {
		return ErrAlreadyClockedOut
	}
	return nil
}

// StartBreak records the start of the day's single break.
func (a *Attendance) StartBreak(at time.Time) error {
	if err := a.CanClockOut(); err != nil {
		return err
	}
	if a.BreakStart != nil {
		return ErrBreakAlreadyStarted
	}
	a.BreakStart = &at
	return nil
}

// EndBreak closes a started break.
func (a *Attendance) EndBreak(at time.Time) error {
	if err := a.CanClockOut(); err != nil {
		return err
	}
	if a.BreakStart == nil {
		return ErrBreakNotStarted
	}
	if a.BreakEnd != nil {
		return ErrBreakAlreadyEnded
	}
	a.BreakEnd = &at
	return nil
}

// Approve moves a pending record to approved. Processed records are terminal.
func (a *Attendance) Approve(approverID string, at time.Time, notes *string) error {
	if a.Status != StatusPending {
		return ErrAttendanceAlreadyProcessed
	}
	a.Status = StatusApproved
	a.ApprovedBy = &approverID
	a.ApprovedAt = &at
	if notes != nil && *notes != "" {
		a.Notes = notes
	}
	return nil
}

// Reject moves a pending record to rejected with a reason.
func (a *Attendance) Reject(approverID string, at time.Time, reason string) error {
	if a.Status != StatusPending {
		return ErrAttendanceAlreadyProcessed
	}
	a.Status = StatusRejected
	a.ApprovedBy = &approverID
	a.ApprovedAt = &at
	a.RejectionReason = &reason
	return nil
}

// ApprovalType classifies what a supervisor is being asked to approve.
func (a *Attendance) ApprovalType() string {
	switch {
	case a.IsOvertime:
		return "Overtime"
	case a.IsUndertime:
		return "Undertime"
	default:
		return "Correction"
	}
}

func (a *Attendance) ReasonTitle() string {
	switch {
	case a.IsOvertime:
		return "Overtime hours worked"
	case a.IsUndertime:
		return "Undertime - less than required hours"
	case a.IsLate:
		return "Late clock-in"
	default:
		return "Attendance correction request"
	}
}
