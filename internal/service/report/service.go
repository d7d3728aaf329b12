package report

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/attendance"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/report"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/export"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"

	noCompany = "Unassigned"
)

type ReportServiceImpl struct {
	reportRepo report.ReportRepository
	loc        *time.Location
	now        func() time.Time
}

func NewReportService(reportRepo report.ReportRepository, loc *time.Location) report.ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportServiceImpl{
		reportRepo: reportRepo,
		loc:        loc,
		now:        time.Now,
	}
}

func (s *ReportServiceImpl) today() time.Time {
	now := s.now().In(s.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// DTR implements report.ReportService.
func (s *ReportServiceImpl) DTR(ctx context.Context, req report.DTRReportRequest) (report.DTRReport, error) {
	if err := req.Validate(s.today()); err != nil {
		return report.DTRReport{}, err
	}

	rows, err := s.reportRepo.ListAttendanceRows(ctx, report.RowFilter{
		From:          req.From(),
		To:            req.To(),
		InternID:      req.InternID,
		ClockedInOnly: true,
	})
	if err != nil {
		return report.DTRReport{}, fmt.Errorf("failed to list attendance rows: %w", err)
	}

	data := make([]report.DTRRow, 0, len(rows))
	var totalHours float64
	for _, row := range rows {
		hours := hoursOf(row)
		totalHours += hours
		location := ""
		if row.LocationAddress != nil {
			location = *row.LocationAddress
		}
		data = append(data, report.DTRRow{
			Date:        row.Date.Format(dateLayout),
			Day:         row.Date.Weekday().String(),
			InternName:  row.InternName,
			StudentID:   row.StudentID,
			ClockIn:     s.clock(row.ClockInTime),
			ClockOut:    s.clock(row.ClockOutTime),
			TotalHours:  hours,
			Status:      row.Status,
			IsLate:      row.IsLate,
			IsUndertime: row.IsUndertime,
			IsOvertime:  row.IsOvertime,
			Location:    location,
		})
	}

	return report.DTRReport{
		ReportType:   "dtr",
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		TotalRecords: len(data),
		TotalHours:   round2(totalHours),
		Data:         data,
	}, nil
}

// Attendance implements report.ReportService.
func (s *ReportServiceImpl) Attendance(ctx context.Context, req report.AttendanceReportRequest) (report.AttendanceReport, error) {
	if err := req.Validate(s.today()); err != nil {
		return report.AttendanceReport{}, err
	}

	result := report.AttendanceReport{
		ReportType: "attendance",
		Status:     req.Status,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	}

	if req.Status == report.AttendanceStatusAbsent {
		data, err := s.absentees(ctx, req.Period)
		if err != nil {
			return report.AttendanceReport{}, err
		}
		result.Data = data
		result.TotalRecords = len(data)
		return result, nil
	}

	filter := report.RowFilter{From: req.From(), To: req.To()}
	switch req.Status {
	case report.AttendanceStatusPresent:
		filter.ApprovedOnly = true
	case report.AttendanceStatusLate:
		filter.LateOnly = true
	}

	rows, err := s.reportRepo.ListAttendanceRows(ctx, filter)
	if err != nil {
		return report.AttendanceReport{}, fmt.Errorf("failed to list attendance rows: %w", err)
	}

	summary := &report.AttendanceSummary{}
	data := make([]report.AttendanceReportRow, 0, len(rows))
	for _, row := range rows {
		summary.Total++
		switch attendance.Status(row.Status) {
		case attendance.StatusApproved:
			summary.Present++
		case attendance.StatusPending:
			summary.Pending++
		case attendance.StatusRejected:
			summary.Rejected++
		}
		if row.IsLate {
			summary.Late++
		}
		if row.IsUndertime {
			summary.Undertime++
		}
		if row.IsOvertime {
			summary.Overtime++
		}

		data = append(data, report.AttendanceReportRow{
			Date:        row.Date.Format(dateLayout),
			InternName:  row.InternName,
			StudentID:   row.StudentID,
			ClockIn:     s.clock(row.ClockInTime),
			ClockOut:    s.clock(row.ClockOutTime),
			Status:      row.Status,
			IsLate:      row.IsLate,
			IsUndertime: row.IsUndertime,
			IsOvertime:  row.IsOvertime,
		})
	}

	result.Summary = summary
	result.Data = data
	result.TotalRecords = len(data)
	return result, nil
}

// absentees lists every active intern and date in the period that has no
// clock-in.
func (s *ReportServiceImpl) absentees(ctx context.Context, period report.Period) ([]report.AttendanceReportRow, error) {
	interns, err := s.reportRepo.ListActiveInterns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active interns: %w", err)
	}

	clockedIn, err := s.reportRepo.ListClockedInDays(ctx, period.From(), period.To())
	if err != nil {
		return nil, fmt.Errorf("failed to list clocked-in days: %w", err)
	}

	data := []report.AttendanceReportRow{}
	for _, date := range period.Dates() {
		day := date.Format(dateLayout)
		for _, in := range interns {
			if _, ok := clockedIn[in.ID][day]; ok {
				continue
			}
			data = append(data, report.AttendanceReportRow{
				Date:       day,
				InternName: in.FullName,
				StudentID:  in.StudentID,
				Status:     report.AttendanceStatusAbsent,
			})
		}
	}
	return data, nil
}

// Hours implements report.ReportService. Only approved records count.
func (s *ReportServiceImpl) Hours(ctx context.Context, req report.HoursReportRequest) (report.HoursReport, error) {
	if err := req.Validate(s.today()); err != nil {
		return report.HoursReport{}, err
	}

	rows, err := s.reportRepo.ListAttendanceRows(ctx, report.RowFilter{
		From:         req.From(),
		To:           req.To(),
		ApprovedOnly: true,
	})
	if err != nil {
		return report.HoursReport{}, fmt.Errorf("failed to list attendance rows: %w", err)
	}

	var summary report.HoursSummary
	interns := make(map[string]struct{})
	for _, row := range rows {
		summary.TotalHours += hoursOf(row)
		summary.TotalDays++
		interns[row.InternID] = struct{}{}
	}
	summary.TotalHours = round2(summary.TotalHours)
	summary.TotalInterns = len(interns)
	summary.AverageHoursPerDay = average(summary.TotalHours, summary.TotalDays)

	result := report.HoursReport{
		ReportType: "hours",
		GroupBy:    req.GroupBy,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Summary:    summary,
	}

	switch req.GroupBy {
	case report.GroupByCompany:
		result.Data = groupByCompany(rows)
	case report.GroupByNone:
		daily := make([]report.DailyHours, 0, len(rows))
		for _, row := range rows {
			daily = append(daily, report.DailyHours{
				Date:       row.Date.Format(dateLayout),
				InternName: row.InternName,
				StudentID:  row.StudentID,
				Hours:      hoursOf(row),
			})
		}
		result.Data = daily
	default:
		result.Data = groupByIntern(rows)
	}

	return result, nil
}

func groupByIntern(rows []report.AttendanceRow) []report.InternHours {
	index := make(map[string]int)
	groups := []report.InternHours{}
	for _, row := range rows {
		i, ok := index[row.InternID]
		if !ok {
			i = len(groups)
			index[row.InternID] = i
			groups = append(groups, report.InternHours{
				InternID:   row.InternID,
				InternName: row.InternName,
				StudentID:  row.StudentID,
			})
		}
		groups[i].TotalHours += hoursOf(row)
		groups[i].TotalDays++
	}

	for i := range groups {
		groups[i].TotalHours = round2(groups[i].TotalHours)
		groups[i].AverageHoursPerDay = average(groups[i].TotalHours, groups[i].TotalDays)
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].TotalHours > groups[j].TotalHours })
	return groups
}

func groupByCompany(rows []report.AttendanceRow) []report.CompanyHours {
	index := make(map[string]int)
	members := make(map[string]map[string]struct{})
	groups := []report.CompanyHours{}
	for _, row := range rows {
		company := noCompany
		if row.CompanyName != nil && *row.CompanyName != "" {
			company = *row.CompanyName
		}
		i, ok := index[company]
		if !ok {
			i = len(groups)
			index[company] = i
			members[company] = make(map[string]struct{})
			groups = append(groups, report.CompanyHours{Company: company})
		}
		groups[i].TotalHours += hoursOf(row)
		groups[i].TotalDays++
		members[company][row.InternID] = struct{}{}
	}

	for i := range groups {
		groups[i].TotalHours = round2(groups[i].TotalHours)
		groups[i].InternCount = len(members[groups[i].Company])
		groups[i].AverageHoursPerIntern = average(groups[i].TotalHours, groups[i].InternCount)
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].TotalHours > groups[j].TotalHours })
	return groups
}

// Export implements report.ReportService.
func (s *ReportServiceImpl) Export(ctx context.Context, req report.ExportReportRequest) (report.ExportFile, error) {
	if err := req.Validate(s.today()); err != nil {
		return report.ExportFile{}, err
	}

	dtr, err := s.DTR(ctx, req.DTRReportRequest)
	if err != nil {
		return report.ExportFile{}, err
	}

	base := fmt.Sprintf("dtr_%s_%s", dtr.StartDate, dtr.EndDate)
	switch req.Format {
	case report.FormatPDF:
		content, err := export.DTRToPDF(dtr, s.now().In(s.loc).Format("2006-01-02 15:04 MST"))
		if err != nil {
			return report.ExportFile{}, fmt.Errorf("%w: %w", report.ErrReportGenerationFailed, err)
		}
		return report.ExportFile{Filename: base + ".pdf", ContentType: export.ContentTypePDF, Content: content}, nil
	default:
		content, err := export.DTRToXLSX(dtr)
		if err != nil {
			return report.ExportFile{}, fmt.Errorf("%w: %w", report.ErrReportGenerationFailed, err)
		}
		return report.ExportFile{Filename: base + ".xlsx", ContentType: export.ContentTypeXLSX, Content: content}, nil
	}
}

func (s *ReportServiceImpl) clock(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.In(s.loc).Format(clockLayout)
	return &formatted
}

func hoursOf(row report.AttendanceRow) float64 {
	if row.TotalHours == nil {
		return 0
	}
	return *row.TotalHours
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func average(total float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return round2(total / float64(n))
}
