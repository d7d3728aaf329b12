package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// ClockIn records the intern's first clock-in of the day
	ClockIn(ctx context.Context, req ClockInRequest) (AttendanceResponse, error)

	// ClockOut closes the day and computes hours
	ClockOut(ctx context.Context, req ClockOutRequest) (AttendanceResponse, error)

	StartBreak(ctx context.Context) (AttendanceResponse, error)
	EndBreak(ctx context.Context) (AttendanceResponse, error)

	// GetToday returns the intern's record and schedule for today
	GetToday(ctx context.Context) (TodayResponse, error)

	// GetMyHistory lists the authenticated intern's records
	GetMyHistory(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// ListAttendance lists all records (admin/supervisor)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	// UpdateAttendance corrects clock times or notes and recomputes hours (admin/supervisor)
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)

	// ListApprovals lists records in the approval queue shape
	ListApprovals(ctx context.Context, filter AttendanceFilter) (ListApprovalResponse, error)

	ApproveAttendance(ctx context.Context, req ApproveAttendanceRequest) (AttendanceResponse, error)
	RejectAttendance(ctx context.Context, req RejectAttendanceRequest) (AttendanceResponse, error)
}
