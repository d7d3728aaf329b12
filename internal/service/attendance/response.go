package attendance

import (
	"time"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/attendance"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/validator"
)

const dateLayout = "2006-01-02"

// localDate is the calendar day of t, as stored in the DATE column.
func localDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func timePtrToString(t *time.Time, loc *time.Location) *string {
	if t == nil {
		return nil
	}
	formatted := t.In(loc).Format(time.RFC3339)
	return &formatted
}

func validationError(field, message string) error {
	return validator.ValidationErrors{{Field: field, Message: message}}
}

func (a *AttendanceServiceImpl) photoURL(key *string) *string {
	if key == nil || *key == "" {
		return nil
	}
	url := a.fileService.FileURL(*key)
	return &url
}

func (a *AttendanceServiceImpl) toAttendanceResponse(att attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:                 att.ID,
		InternID:           att.InternID,
		InternName:         att.InternName,
		StudentID:          att.InternStudentID,
		Date:               att.Date.Format(dateLayout),
		ClockInTime:        timePtrToString(att.ClockInTime, a.loc),
		ClockOutTime:       timePtrToString(att.ClockOutTime, a.loc),
		ClockInLatitude:    att.ClockInLatitude,
		ClockInLongitude:   att.ClockInLongitude,
		ClockOutLatitude:   att.ClockOutLatitude,
		ClockOutLongitude:  att.ClockOutLongitude,
		ClockInPhoto:       a.photoURL(att.ClockInPhoto),
		ClockOutPhoto:      a.photoURL(att.ClockOutPhoto),
		LocationAddress:    att.LocationAddress,
		GeofenceLocationID: att.GeofenceLocationID,
		GeofenceName:       att.GeofenceName,
		ClockInMethod:      string(att.ClockInMethod),
		BreakStart:         timePtrToString(att.BreakStart, a.loc),
		BreakEnd:           timePtrToString(att.BreakEnd, a.loc),
		TotalHours:         att.TotalHours,
		IsLate:             att.IsLate,
		IsUndertime:        att.IsUndertime,
		IsOvertime:         att.IsOvertime,
		Status:             string(att.Status),
		Notes:              att.Notes,
		ApprovedBy:         att.ApprovedBy,
		ApprovedAt:         timePtrToString(att.ApprovedAt, a.loc),
		RejectionReason:    att.RejectionReason,
		CreatedAt:          att.CreatedAt.In(a.loc).Format(time.RFC3339),
		UpdatedAt:          att.UpdatedAt.In(a.loc).Format(time.RFC3339),
	}
}

func toApprovalResponse(att attendance.Attendance) attendance.ApprovalResponse {
	return attendance.ApprovalResponse{
		ID:          att.ID,
		InternID:    att.InternID,
		InternName:  att.InternName,
		StudentID:   att.InternStudentID,
		Type:        att.ApprovalType(),
		ReasonTitle: att.ReasonTitle(),
		Date:        att.Date.Format(dateLayout),
		TotalHours:  att.TotalHours,
		IsLate:      att.IsLate,
		IsUndertime: att.IsUndertime,
		IsOvertime:  att.IsOvertime,
		Status:      string(att.Status),
		Notes:       att.Notes,
		SubmittedAt: att.UpdatedAt.Format(time.RFC3339),
	}
}
