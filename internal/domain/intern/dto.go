package intern

import (
	"strings"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/validator"
)

type CreateProfileRequest struct {
	StudentID             string  `json:"student_id"`
	FullName              string  `json:"full_name"`
	School                string  `json:"school"`
	Course                string  `json:"course"`
	YearLevel             *string `json:"year_level"`
	Phone                 *string `json:"phone"`
	EmergencyContactName  *string `json:"emergency_contact_name"`
	EmergencyContactPhone *string `json:"emergency_contact_phone"`
	RequiredHours         int     `json:"required_hours"`
	CompanyName           *string `json:"company_name"`
	SupervisorName        *string `json:"supervisor_name"`
	SupervisorEmail       *string `json:"supervisor_email"`
	StartDate             string  `json:"start_date"`
	EndDate               *string `json:"end_date"`
}

func (r *CreateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	required := map[string]string{
		"student_id": r.StudentID,
		"full_name":  r.FullName,
		"school":     r.School,
		"course":     r.Course,
	}
	for _, field := range []string{"student_id", "full_name", "school", "course"} {
		if validator.IsEmpty(required[field]) {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " is required",
			})
		}
	}

	if r.RequiredHours < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "required_hours",
			Message: "required_hours must not be negative",
		})
	}

	if r.Phone != nil && *r.Phone != "" && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{
			Field:   "phone",
			Message: "phone must be a valid mobile number",
		})
	}
	if r.EmergencyContactPhone != nil && *r.EmergencyContactPhone != "" && !validator.IsValidPhoneNumber(*r.EmergencyContactPhone) {
		errs = append(errs, validator.ValidationError{
			Field:   "emergency_contact_phone",
			Message: "emergency_contact_phone must be a valid mobile number",
		})
	}
	if r.SupervisorEmail != nil && *r.SupervisorEmail != "" && !validator.IsValidEmail(*r.SupervisorEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "supervisor_email",
			Message: "supervisor_email must be a valid email address",
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
				Message: "end_date must not be before start_date",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type InternFilter struct {
	Search   *string `json:"search"`
	IsActive *bool   `json:"is_active"`
	Page     int     `json:"page"`
	Limit    int     `json:"limit"`
}

func (f *InternFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}
	if f.Search != nil {
		trimmed := strings.TrimSpace(*f.Search)
		f.Search = &trimmed
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type InternResponse struct {
	ID                    string  `json:"id"`
	UserID                string  `json:"user_id"`
	Email                 string  `json:"email,omitempty"`
	StudentID             string  `json:"student_id"`
	FullName              string  `json:"full_name"`
	School                string  `json:"school"`
	Course                string  `json:"course"`
	YearLevel             *string `json:"year_level"`
	Phone                 *string `json:"phone"`
	EmergencyContactName  *string `json:"emergency_contact_name"`
	EmergencyContactPhone *string `json:"emergency_contact_phone"`
	RequiredHours         int     `json:"required_hours"`
	CompanyName           *string `json:"company_name"`
	SupervisorName        *string `json:"supervisor_name"`
	SupervisorEmail       *string `json:"supervisor_email"`
	StartDate             string  `json:"start_date"`
	EndDate               *string `json:"end_date"`
	IsActive              bool    `json:"is_active"`
}

type ListInternResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Interns    []InternResponse `json:"interns"`
}
