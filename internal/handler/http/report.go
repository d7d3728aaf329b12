package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/report"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	// DTR handles GET /reports/dtr
	DTR(w http.ResponseWriter, r *http.Request)
	// Attendance handles GET /reports/attendance
	Attendance(w http.ResponseWriter, r *http.Request)
	// Hours handles GET /reports/hours
	Hours(w http.ResponseWriter, r *http.Request)
	// Export handles GET /reports/export
	Export(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

func periodFromQuery(r *http.Request) report.Period {
	return report.Period{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}
}

func dtrRequestFromQuery(r *http.Request) report.DTRReportRequest {
	return report.DTRReportRequest{
		Period:   periodFromQuery(r),
		InternID: getStringQueryParam(r, "intern_id"),
	}
}

// DTR implements ReportHandler.
func (h *reportHandlerImpl) DTR(w http.ResponseWriter, r *http.Request) {
	result, err := h.reportService.DTR(r.Context(), dtrRequestFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Attendance implements ReportHandler.
func (h *reportHandlerImpl) Attendance(w http.ResponseWriter, r *http.Request) {
	req := report.AttendanceReportRequest{
		Period: periodFromQuery(r),
		Status: r.URL.Query().Get("status"),
	}

	result, err := h.reportService.Attendance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Hours implements ReportHandler.
func (h *reportHandlerImpl) Hours(w http.ResponseWriter, r *http.Request) {
	req := report.HoursReportRequest{
		Period:  periodFromQuery(r),
		GroupBy: r.URL.Query().Get("group_by"),
	}

	result, err := h.reportService.Hours(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Export implements ReportHandler. The file is streamed as an attachment.
func (h *reportHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	req := report.ExportReportRequest{
		DTRReportRequest: dtrRequestFromQuery(r),
		Format:           r.URL.Query().Get("format"),
	}

	file, err := h.reportService.Export(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Content); err != nil {
		slog.Warn("Failed to write export", "filename", file.Filename, "error", err)
	}
}
