package leave

import (
	"strings"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/validator"
)

type CreateLeaveRequest struct {
	Type        string  `json:"type"`
	ReasonTitle string  `json:"reason_title"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

func (r *CreateLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	if !validator.IsInSlice(r.Type, []string{string(TypeLeave), string(TypeHoliday)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: leave, holiday",
		})
	}

	if validator.IsEmpty(r.ReasonTitle) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason_title",
			Message: "reason_title is required",
		})
	} else if len(r.ReasonTitle) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason_title",
			Message: "reason_title must not exceed 255 characters",
		})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if r.EndDate != nil && *r.EndDate != "" {
		end, ok := validator.IsValidDate(*r.EndDate)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		} else if startOK && end.Before(start) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be on or after start_date",
			})
		}
	}

	if r.Notes != nil && len(*r.Notes) > 1000 {
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

type ApproveLeaveRequest struct {
	ID       string  `json:"-"`
	Comments *string `json:"comments,omitempty"`
}

func (r *ApproveLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if r.Comments != nil && len(*r.Comments) > 1000 {
		errs = append(errs, validator.ValidationError{Field: "comments", Message: "comments must not exceed 1000 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RejectLeaveRequest struct {
	ID       string  `json:"-"`
	Reason   string  `json:"reason"`
	Comments *string `json:"comments,omitempty"`
}

func (r *RejectLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "rejection reason is required"})
	} else if len(r.Reason) > 1000 {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason must not exceed 1000 characters"})
	}
	if r.Comments != nil && len(*r.Comments) > 1000 {
		errs = append(errs, validator.ValidationError{Field: "comments", Message: "comments must not exceed 1000 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveFilter struct {
	InternID *string `json:"intern_id,omitempty"`
	Status   *string `json:"status,omitempty"`
	Type     *string `json:"type,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *LeaveFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{Field: "page", Message: "page must be a positive number"})
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must be a positive number"})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must not exceed 100"})
	}

	if f.Status != nil && *f.Status != "" {
		if !validator.IsInSlice(*f.Status, []string{string(StatusPending), string(StatusApproved), string(StatusRejected)}) {
			errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of: pending, approved, rejected"})
		}
	}
	if f.Type != nil && *f.Type != "" {
		if !validator.IsInSlice(*f.Type, []string{string(TypeLeave), string(TypeHoliday)}) {
			errs = append(errs, validator.ValidationError{Field: "type", Message: "type must be one of: leave, holiday"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveResponse struct {
	ID              string  `json:"id"`
	InternID        string  `json:"intern_id"`
	InternName      string  `json:"intern_name"`
	InternStudentID string  `json:"intern_student_id"`
	Type            string  `json:"type"`
	ReasonTitle     string  `json:"reason_title"`
	Status          string  `json:"status"`
	StartDate       string  `json:"start_date"`
	EndDate         *string `json:"end_date"`
	Days            int     `json:"days"`
	Notes           *string `json:"notes"`
	RejectionReason *string `json:"rejection_reason"`
	ApprovedBy      *string `json:"approved_by"`
	ApprovedAt      *string `json:"approved_at"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

type ListLeaveResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
	Showing    string          `json:"showing"`
	Leaves     []LeaveResponse `json:"leaves"`
}
