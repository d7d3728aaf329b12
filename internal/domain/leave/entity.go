package leave

import "time"

type Type string

const (
	TypeLeave   Type = "leave"
	TypeHoliday Type = "holiday"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Leave is an intern's request to be excused for one or more days.
type Leave struct {
	ID              string
	InternID        string
	Type            Type
	ReasonTitle     string
	StartDate       time.Time
	EndDate         *time.Time
	Notes           *string
	Status          Status
	ApprovedBy      *string
	ApprovedAt      *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Join
	InternName      string
	InternStudentID string
	InternUserID    string
}

// Days counts the calendar days the leave covers, inclusive.
func (l *Leave) Days() int {
	if l.EndDate == nil {
		return 1
	}
	return int(l.EndDate.Sub(l.StartDate).Hours()/24) + 1
}

// Covers reports whether date falls in the leave's range.
func (l *Leave) Covers(date time.Time) bool {
	day := date.Format("2006-01-02")
	end := l.StartDate
	if l.EndDate != nil {
		end = *l.EndDate
	}
	return day >= l.StartDate.Format("2006-01-02") && day <= end.Format("2006-01-02")
}

func (l *Leave) Approve(approverID string, at time.Time, comments *string) error {
	if l.Status != StatusPending {
		return ErrLeaveAlreadyProcessed
	}
	l.Status = StatusApproved
	l.ApprovedBy = &approverID
	l.ApprovedAt = &at
	l.RejectionReason = nil
	if comments != nil && *comments != "" {
		l.Notes = comments
	}
	return nil
}

func (l *Leave) Reject(approverID string, at time.Time, reason string, comments *string) error {
	if l.Status != StatusPending {
		return ErrLeaveAlreadyProcessed
	}
	l.Status = StatusRejected
	l.ApprovedBy = &approverID
	l.ApprovedAt = &at
	l.RejectionReason = &reason
	if comments != nil && *comments != "" {
		l.Notes = comments
	}
	return nil
}
