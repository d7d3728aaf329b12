package attendance

import (
	"strings"
	"time"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/validator"
)

// ========================================
// CLOCK DTOs
// ========================================

type ClockInRequest struct {
	Latitude           *float64 `json:"location_lat"`
	Longitude          *float64 `json:"location_lng"`
	Photo              string   `json:"photo"`
	GeofenceLocationID *string  `json:"geofence_location_id,omitempty"`
}

func (r *ClockInRequest) Validate() error {
	return validateClock(r.Latitude, r.Longitude, r.Photo, r.GeofenceLocationID)
}

type ClockOutRequest struct {
	Latitude           *float64 `json:"location_lat"`
	Longitude          *float64 `json:"location_lng"`
	Photo              string   `json:"photo"`
	GeofenceLocationID *string  `json:"geofence_location_id,omitempty"`
}

func (r *ClockOutRequest) Validate() error {
	return validateClock(r.Latitude, r.Longitude, r.Photo, r.GeofenceLocationID)
}

func validateClock(lat, lng *float64, photo string, geofenceID *string) error {
	var errs validator.ValidationErrors

	if lat == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "location_lat",
			Message: "location_lat is required",
		})
	} else if !validator.IsValidLatitude(*lat) {
		errs = append(errs, validator.ValidationError{
			Field:   "location_lat",
			Message: "location_lat must be between -90 and 90",
		})
	}

	if lng == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "location_lng",
			Message: "location_lng is required",
		})
	} else if !validator.IsValidLongitude(*lng) {
		errs = append(errs, validator.ValidationError{
			Field:   "location_lng",
			Message: "location_lng must be between -180 and 180",
		})
	}

	if validator.IsEmpty(photo) {
		errs = append(errs, validator.ValidationError{
			Field:   "photo",
			Message: "photo is required",
		})
	} else if !validator.IsBase64Image(photo) {
		errs = append(errs, validator.ValidationError{
			Field:   "photo",
			Message: "photo must be a base64 encoded image",
		})
	}

	if geofenceID != nil && *geofenceID != "" && !validator.IsValidUUID(*geofenceID) {
		errs = append(errs, validator.ValidationError{
			Field:   "geofence_location_id",
			Message: "geofence_location_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// RESPONSE DTOs
// ========================================

type AttendanceResponse struct {
	ID                 string   `json:"id"`
	InternID           string   `json:"intern_id"`
	InternName         string   `json:"intern_name,omitempty"`
	StudentID          string   `json:"student_id,omitempty"`
	Date               string   `json:"date"`
	ClockInTime        *string  `json:"clock_in_time"`
	ClockOutTime       *string  `json:"clock_out_time"`
	ClockInLatitude    *float64 `json:"clock_in_latitude,omitempty"`
	ClockInLongitude   *float64 `json:"clock_in_longitude,omitempty"`
	ClockOutLatitude   *float64 `json:"clock_out_latitude,omitempty"`
	ClockOutLongitude  *float64 `json:"clock_out_longitude,omitempty"`
	ClockInPhoto       *string  `json:"clock_in_photo,omitempty"`
	ClockOutPhoto      *string  `json:"clock_out_photo,omitempty"`
	LocationAddress    *string  `json:"location_address,omitempty"`
	GeofenceLocationID *string  `json:"geofence_location_id,omitempty"`
	GeofenceName       *string  `json:"geofence_name,omitempty"`
	DistanceMeters     *float64 `json:"distance_meters,omitempty"`
	ClockInMethod      string   `json:"clock_in_method"`
	BreakStart         *string  `json:"break_start,omitempty"`
	BreakEnd           *string  `json:"break_end,omitempty"`
	TotalHours         *float64 `json:"total_hours"`
	IsLate             bool     `json:"is_late"`
	IsUndertime        bool     `json:"is_undertime"`
	IsOvertime         bool     `json:"is_overtime"`
	Status             string   `json:"status"`
	Notes              *string  `json:"notes,omitempty"`
	ApprovedBy         *string  `json:"approved_by,omitempty"`
	ApprovedAt         *string  `json:"approved_at,omitempty"`
	RejectionReason    *string  `json:"rejection_reason,omitempty"`
	CreatedAt          string   `json:"created_at"`
	UpdatedAt          string   `json:"updated_at"`
}

// TodayResponse is the intern's dashboard view of the current day.
type TodayResponse struct {
	Date           string              `json:"date"`
	Attendance     *AttendanceResponse `json:"attendance"`
	HasSchedule    bool                `json:"has_schedule"`
	ScheduleStart  *string             `json:"schedule_start,omitempty"`
	ScheduleEnd    *string             `json:"schedule_end,omitempty"`
	ScheduledHours *float64            `json:"scheduled_hours,omitempty"`
	CanClockIn     bool                `json:"can_clock_in"`
	CanClockOut    bool                `json:"can_clock_out"`
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}

// ApprovalResponse is an attendance record presented as a supervisor request.
type ApprovalResponse struct {
	ID          string   `json:"id"`
	InternID    string   `json:"intern_id"`
	InternName  string   `json:"intern_name"`
	StudentID   string   `json:"student_id"`
	Type        string   `json:"type"`
	ReasonTitle string   `json:"reason_title"`
	Date        string   `json:"date"`
	TotalHours  *float64 `json:"total_hours"`
	IsLate      bool     `json:"is_late"`
	IsUndertime bool     `json:"is_undertime"`
	IsOvertime  bool     `json:"is_overtime"`
	Status      string   `json:"status"`
	Notes       *string  `json:"notes,omitempty"`
	SubmittedAt string   `json:"submitted_at"`
}

type ListApprovalResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Showing    string             `json:"showing"`
	Approvals  []ApprovalResponse `json:"approvals"`
}

// ========================================
// FILTER DTOs
// ========================================

type AttendanceFilter struct {
	// Search & Filter
	InternID   *string `json:"intern_id,omitempty"`
	InternName *string `json:"intern_name,omitempty"`
	Date       *string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status     *string `json:"status,omitempty"`
	// FlaggedOnly keeps records that are late, under or over time
	FlaggedOnly bool `json:"flagged_only,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // date, intern_name, clock_in_time, clock_out_time, status, total_hours
	SortOrder string `json:"sort_order"` // asc, desc
}

var validSortFields = []string{"date", "intern_name", "clock_in_time", "clock_out_time", "status", "total_hours"}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.InternID != nil && *f.InternID != "" && !validator.IsValidUUID(*f.InternID) {
		errs = append(errs, validator.ValidationError{
			Field:   "intern_id",
			Message: "intern_id must be a valid UUID",
		})
	}

	if f.Status != nil && *f.Status != "" {
		validStatuses := []string{string(StatusPending), string(StatusApproved), string(StatusRejected)}
		if !validator.IsInSlice(*f.Status, validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: pending, approved, rejected",
			})
		}
	}

	for _, d := range []struct {
		field string
		value *string
	}{
		{"date", f.Date},
		{"start_date", f.StartDate},
		{"end_date", f.EndDate},
	} {
		if d.value != nil && *d.value != "" {
			if _, valid := validator.IsValidDate(*d.value); !valid {
				errs = append(errs, validator.ValidationError{
					Field:   d.field,
					Message: d.field + " must be in YYYY-MM-DD format",
				})
			}
		}
	}

	if f.StartDate != nil && f.EndDate != nil && *f.StartDate != "" && *f.EndDate != "" {
		start, okStart := validator.IsValidDate(*f.StartDate)
		end, okEnd := validator.IsValidDate(*f.EndDate)
		if okStart && okEnd && end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must not be before start_date",
			})
		}
	}

	if f.SortBy != "" {
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: " + strings.Join(validSortFields, ", "),
			})
		}
	} else {
		f.SortBy = "date"
	}

	if f.SortOrder != "" {
		f.SortOrder = strings.ToLower(f.SortOrder)
		if !validator.IsInSlice(f.SortOrder, []string{"asc", "desc"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc" // newest first
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ========================================
// ADMIN DTOs
// ========================================

type UpdateAttendanceRequest struct {
	ID           string  `json:"-"`
	ClockInTime  *string `json:"clock_in_time,omitempty"`  // RFC3339
	ClockOutTime *string `json:"clock_out_time,omitempty"` // RFC3339
	Notes        *string `json:"notes,omitempty"`

	clockIn  *time.Time
	clockOut *time.Time
}

const maxNotesLength = 1000

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.ClockInTime == nil && r.ClockOutTime == nil && r.Notes == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "at least one of clock_in_time, clock_out_time or notes is required",
		})
	}

	if r.ClockInTime != nil {
		t, ok := validator.IsValidDateTime(*r.ClockInTime)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_in_time",
				Message: "clock_in_time must be an ISO8601 timestamp",
			})
		} else {
			r.clockIn = &t
		}
	}

	if r.ClockOutTime != nil {
		t, ok := validator.IsValidDateTime(*r.ClockOutTime)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "clock_out_time",
				Message: "clock_out_time must be an ISO8601 timestamp",
			})
		} else {
			r.clockOut = &t
		}
	}

	if r.clockIn != nil && r.clockOut != nil && r.clockOut.Before(*r.clockIn) {
		errs = append(errs, validator.ValidationError{
			Field:   "clock_out_time",
			Message: "clock_out_time must be after clock_in_time",
		})
	}

	if r.Notes != nil && len(*r.Notes) > maxNotesLength {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ParsedTimes returns the timestamps decoded by Validate.
func (r *UpdateAttendanceRequest) ParsedTimes() (clockIn, clockOut *time.Time) {
	return r.clockIn, r.clockOut
}

type ApproveAttendanceRequest struct {
	ID    string  `json:"-"`
	Notes *string `json:"notes,omitempty"`
}

func (r *ApproveAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if r.Notes != nil && len(*r.Notes) > maxNotesLength {
		errs = append(errs, validator.ValidationError{
			Field:   "notes",
			Message: "notes must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RejectAttendanceRequest struct {
	ID     string `json:"-"`
	Reason string `json:"reason"`
}

func (r *RejectAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "rejection reason is required",
		})
	} else if len(r.Reason) > maxNotesLength {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
