package report

import (
	"time"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/validator"
)

const (
	dateLayout   = "2006-01-02"
	maxRangeDays = 366
)

// Period is a date range; empty bounds default to the first of the month
// through today.
type Period struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	from time.Time
	to   time.Time
}

// Resolve fills empty bounds relative to today and validates the range.
func (p *Period) Resolve(today time.Time) error {
	var errs validator.ValidationErrors

	if p.StartDate == "" {
		p.StartDate = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC).Format(dateLayout)
	}
	if p.EndDate == "" {
		p.EndDate = today.Format(dateLayout)
	}

	from, okFrom := validator.IsValidDate(p.StartDate)
	if !okFrom {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	to, okTo := validator.IsValidDate(p.EndDate)
	if !okTo {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if okFrom && okTo {
		if to.Before(from) {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: ErrInvalidDateRange.Error()})
		} else if to.Sub(from).Hours()/24 >= maxRangeDays {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: ErrDateRangeTooLarge.Error()})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	p.from, p.to = from, to
	return nil
}

func (p Period) From() time.Time { return p.from }
func (p Period) To() time.Time   { return p.to }

// Dates lists every day in the resolved range.
func (p Period) Dates() []time.Time {
	var dates []time.Time
	for d := p.from; !d.After(p.to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

func validateInternID(internID *string) error {
	if internID != nil && *internID != "" && !validator.IsValidUUID(*internID) {
		return validator.ValidationErrors{{Field: "intern_id", Message: "intern_id must be a valid UUID"}}
	}
	return nil
}

// ========================================
// DTR
// ========================================

type DTRReportRequest struct {
	Period
	InternID *string `json:"intern_id,omitempty"`
}

func (r *DTRReportRequest) Validate(today time.Time) error {
	if err := r.Period.Resolve(today); err != nil {
		return err
	}
	return validateInternID(r.InternID)
}

type DTRRow struct {
	Date        string  `json:"date"`
	Day         string  `json:"day"`
	InternName  string  `json:"intern_name"`
	StudentID   string  `json:"student_id"`
	ClockIn     *string `json:"clock_in"`
	ClockOut    *string `json:"clock_out"`
	TotalHours  float64 `json:"total_hours"`
	Status      string  `json:"status"`
	IsLate      bool    `json:"is_late"`
	IsUndertime bool    `json:"is_undertime"`
	IsOvertime  bool    `json:"is_overtime"`
	Location    string  `json:"location"`
}

type DTRReport struct {
	ReportType   string   `json:"report_type"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	TotalRecords int      `json:"total_records"`
	TotalHours   float64  `json:"total_hours"`
	Data         []DTRRow `json:"data"`
}

// ========================================
// ATTENDANCE SUMMARY
// ========================================

const (
	AttendanceStatusAll     = "all"
	AttendanceStatusPresent = "present"
	AttendanceStatusLate    = "late"
	AttendanceStatusAbsent  = "absent"
)

type AttendanceReportRequest struct {
	Period
	Status string `json:"status"`
}

func (r *AttendanceReportRequest) Validate(today time.Time) error {
	if err := r.Period.Resolve(today); err != nil {
		return err
	}
	if r.Status == "" {
		r.Status = AttendanceStatusAll
	}
	valid := []string{AttendanceStatusAll, AttendanceStatusPresent, AttendanceStatusLate, AttendanceStatusAbsent}
	if !validator.IsInSlice(r.Status, valid) {
		return validator.ValidationErrors{{Field: "status", Message: "status must be one of: all, present, late, absent"}}
	}
	return nil
}

type AttendanceSummary struct {
	Total     int `json:"total"`
	Present   int `json:"present"`
	Pending   int `json:"pending"`
	Rejected  int `json:"rejected"`
	Late      int `json:"late"`
	Undertime int `json:"undertime"`
	Overtime  int `json:"overtime"`
}

type AttendanceReportRow struct {
	Date        string  `json:"date"`
	InternName  string  `json:"intern_name"`
	StudentID   string  `json:"student_id"`
	ClockIn     *string `json:"clock_in,omitempty"`
	ClockOut    *string `json:"clock_out,omitempty"`
	Status      string  `json:"status"`
	IsLate      bool    `json:"is_late"`
	IsUndertime bool    `json:"is_undertime"`
	IsOvertime  bool    `json:"is_overtime"`
}

type AttendanceReport struct {
	ReportType   string                `json:"report_type"`
	Status       string                `json:"status"`
	StartDate    string                `json:"start_date"`
	EndDate      string                `json:"end_date"`
	TotalRecords int                   `json:"total_records"`
	Summary      *AttendanceSummary    `json:"summary,omitempty"`
	Data         []AttendanceReportRow `json:"data"`
}

// ========================================
// HOURS
// ========================================

const (
	GroupByIntern  = "intern"
	GroupByCompany = "company"
	GroupByNone    = "none"
)

type HoursReportRequest struct {
	Period
	GroupBy string `json:"group_by"`
}

func (r *HoursReportRequest) Validate(today time.Time) error {
	if err := r.Period.Resolve(today); err != nil {
		return err
	}
	if r.GroupBy == "" {
		r.GroupBy = GroupByIntern
	}
	if !validator.IsInSlice(r.GroupBy, []string{GroupByIntern, GroupByCompany, GroupByNone}) {
		return validator.ValidationErrors{{Field: "group_by", Message: "group_by must be one of: intern, company, none"}}
	}
	return nil
}

type HoursSummary struct {
	TotalHours         float64 `json:"total_hours"`
	TotalDays          int     `json:"total_days"`
	TotalInterns       int     `json:"total_interns"`
	AverageHoursPerDay float64 `json:"average_hours_per_day"`
}

type InternHours struct {
	InternID           string  `json:"intern_id"`
	InternName         string  `json:"intern_name"`
	StudentID          string  `json:"student_id"`
	TotalHours         float64 `json:"total_hours"`
	TotalDays          int     `json:"total_days"`
	AverageHoursPerDay float64 `json:"average_hours_per_day"`
}

type CompanyHours struct {
	Company               string  `json:"company"`
	TotalHours            float64 `json:"total_hours"`
	TotalDays             int     `json:"total_days"`
	InternCount           int     `json:"intern_count"`
	AverageHoursPerIntern float64 `json:"average_hours_per_intern"`
}

type DailyHours struct {
	Date       string  `json:"date"`
	InternName string  `json:"intern_name"`
	StudentID  string  `json:"student_id"`
	Hours      float64 `json:"hours"`
}

type HoursReport struct {
	ReportType string       `json:"report_type"`
	GroupBy    string       `json:"group_by"`
	StartDate  string       `json:"start_date"`
	EndDate    string       `json:"end_date"`
	Summary    HoursSummary `json:"summary"`
	// Data is []InternHours, []CompanyHours or []DailyHours depending on GroupBy
	Data any `json:"data"`
}

// ========================================
// EXPORT
// ========================================

const (
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

type ExportReportRequest struct {
	DTRReportRequest
	Format string `json:"format"`
}

func (r *ExportReportRequest) Validate(today time.Time) error {
	if r.Format == "" {
		r.Format = FormatXLSX
	}
	if r.Format == "excel" {
		r.Format = FormatXLSX
	}
	if !validator.IsInSlice(r.Format, []string{FormatXLSX, FormatPDF}) {
		return validator.ValidationErrors{{Field: "format", Message: ErrUnsupportedFormat.Error()}}
	}
	return r.DTRReportRequest.Validate(today)
}

// ExportFile is a rendered report ready to stream to the client.
type ExportFile struct {
	Filename    string
	ContentType string
	Content     []byte
}
