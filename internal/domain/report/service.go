package report

import "context"

// ReportService defines the interface for report generation
type ReportService interface {
	// DTR returns the daily time record for a period
	DTR(ctx context.Context, req DTRReportRequest) (DTRReport, error)

	// Attendance returns a summary of records, or the absentee list
	Attendance(ctx context.Context, req AttendanceReportRequest) (AttendanceReport, error)

	// Hours returns approved hours grouped by intern or company
	Hours(ctx context.Context, req HoursReportRequest) (HoursReport, error)

	// Export renders the DTR as a spreadsheet or PDF
	Export(ctx context.Context, req ExportReportRequest) (ExportFile, error)
}
