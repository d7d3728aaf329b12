package http

import (
	"net/http"
	"strings"
	"testing"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/dashboard"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/report"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportHandler_DTR(t *testing.T) {
	f := newAPIFixture(t, 10)
	admin := f.adminToken()
	ana := f.registerIntern("Ana Cruz", "ana@example.com")

	rec := f.do(http.MethodPost, "/api/v1/attendance/clock-in", ana, clockBody(t, officeLat, officeLng, ""))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = f.do(http.MethodGet, "/api/v1/reports/dtr", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var dtr report.DTRReport
	decode(t, rec, &dtr)
	assert.Equal(t, 1, dtr.TotalRecords)
	require.Len(t, dtr.Data, 1)
	assert.Equal(t, "Ana Cruz", dtr.Data[0].InternName)

	rec = f.do(http.MethodGet, "/api/v1/reports/dtr?start_date=2025-03-10&end_date=2025-03-01", admin, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
}

func TestReportHandler_AttendanceAndHours(t *testing.T) {
	f := newAPIFixture(t, 10)
	admin := f.adminToken()

	rec := f.do(http.MethodGet, "/api/v1/reports/attendance?start_date=2025-03-01&end_date=2025-03-07", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var summary report.AttendanceReport
	decode(t, rec, &summary)
	assert.Equal(t, "2025-03-01", summary.StartDate)
	assert.Equal(t, "2025-03-07", summary.EndDate)

	rec = f.do(http.MethodGet, "/api/v1/reports/hours?start_date=2025-03-01&end_date=2025-03-07&group_by=company", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var hours report.HoursReport
	decode(t, rec, &hours)
	assert.Equal(t, "company", hours.GroupBy)
}

func TestReportHandler_Export(t *testing.T) {
	f := newAPIFixture(t, 10)
	admin := f.adminToken()

	rec := f.do(http.MethodGet, "/api/v1/reports/export?format=xlsx&start_date=2025-03-01&end_date=2025-03-07", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, export.ContentTypeXLSX, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="dtr_2025-03-01_2025-03-07.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "PK"), "xlsx is a zip archive")

	rec = f.do(http.MethodGet, "/api/v1/reports/export?format=pdf&start_date=2025-03-01&end_date=2025-03-07", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, export.ContentTypePDF, rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))

	rec = f.do(http.MethodGet, "/api/v1/reports/export?format=csv", admin, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestDashboardHandler_GetStats(t *testing.T) {
	f := newAPIFixture(t, 10)
	admin := f.adminToken()
	ana := f.registerIntern("Ana Cruz", "ana@example.com")
	f.registerIntern("Ben Reyes", "ben@example.com")

	rec := f.do(http.MethodPost, "/api/v1/attendance/clock-in", ana, clockBody(t, officeLat, officeLng, ""))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = f.do(http.MethodGet, "/api/v1/dashboard/stats", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var stats dashboard.StatsResponse
	decode(t, rec, &stats)
	assert.Equal(t, int64(2), stats.TotalInterns)
	assert.Equal(t, int64(1), stats.ActiveToday)
	assert.Equal(t, 50.0, stats.AttendanceRate)
	require.Len(t, stats.RecentActivity, 1)
	assert.Equal(t, "clock_in", stats.RecentActivity[0].Action)
}
