package attendance

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/validator"
)

const tinyPhoto = "data:image/jpeg;base64,/9j/4AAQSkZJRg=="

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	return verrs.ToMap()
}

func coord(v float64) *float64 { return &v }

func TestClockInRequest_Validate(t *testing.T) {
	req := ClockInRequest{Latitude: coord(14.5), Longitude: coord(121.0), Photo: tinyPhoto}
	assert.NoError(t, req.Validate())

	bad := "not-a-uuid"
	req = ClockInRequest{Latitude: coord(91), Longitude: coord(-181), GeofenceLocationID: &bad}
	errs := fieldErrors(t, req.Validate())
	assert.Contains(t, errs, "location_lat")
	assert.Contains(t, errs, "location_lng")
	assert.Equal(t, "photo is required", errs["photo"])
	assert.Contains(t, errs, "geofence_location_id")
}

func TestClockOutRequest_RejectsNonImage(t *testing.T) {
	req := ClockOutRequest{Latitude: coord(0), Longitude: coord(0), Photo: "data:text/plain;base64,aGVsbG8="}
	errs := fieldErrors(t, req.Validate())
	assert.Equal(t, "photo must be a base64 encoded image", errs["photo"])
	assert.NotContains(t, errs, "location_lat", "equator and meridian are valid coordinates")
}

func TestClockRequests_RequireCoordinates(t *testing.T) {
	var in ClockInRequest
	require.NoError(t, json.Unmarshal([]byte(`{"photo":"`+tinyPhoto+`"}`), &in))
	errs := fieldErrors(t, in.Validate())
	assert.Equal(t, "location_lat is required", errs["location_lat"])
	assert.Equal(t, "location_lng is required", errs["location_lng"])
	assert.NotContains(t, errs, "photo")

	var out ClockOutRequest
	require.NoError(t, json.Unmarshal([]byte(`{"location_lat":14.5,"photo":"`+tinyPhoto+`"}`), &out))
	errs = fieldErrors(t, out.Validate())
	assert.NotContains(t, errs, "location_lat")
	assert.Equal(t, "location_lng is required", errs["location_lng"])
}

func TestAttendanceFilter_Defaults(t *testing.T) {
	f := AttendanceFilter{}
	require.NoError(t, f.Validate())
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.Limit)
	assert.Equal(t, "date", f.SortBy)
	assert.Equal(t, "desc", f.SortOrder)
}

func TestAttendanceFilter_Invalid(t *testing.T) {
	status := "present"
	start, end := "2025-03-10", "2025-03-01"
	f := AttendanceFilter{Limit: 500, Status: &status, StartDate: &start, EndDate: &end, SortBy: "salary", SortOrder: "UP"}

	errs := fieldErrors(t, f.Validate())
	assert.Contains(t, errs, "limit")
	assert.Contains(t, errs, "status")
	assert.Equal(t, "end_date must not be before start_date", errs["end_date"])
	assert.Contains(t, errs, "sort_by")
	assert.Contains(t, errs, "sort_order")
}

func TestUpdateAttendanceRequest_Validate(t *testing.T) {
	in, out := "2025-03-03T08:00:00+08:00", "2025-03-03T17:00:00+08:00"
	req := UpdateAttendanceRequest{ID: "a1", ClockInTime: &in, ClockOutTime: &out}
	require.NoError(t, req.Validate())
	clockIn, clockOut := req.ParsedTimes()
	require.NotNil(t, clockIn)
	require.NotNil(t, clockOut)
	assert.Equal(t, 9.0, clockOut.Sub(*clockIn).Hours())

	req = UpdateAttendanceRequest{ID: "a1", ClockInTime: &out, ClockOutTime: &in}
	assert.Contains(t, fieldErrors(t, req.Validate()), "clock_out_time")

	long := strings.Repeat("x", 1001)
	req = UpdateAttendanceRequest{ID: "a1", Notes: &long}
	assert.Contains(t, fieldErrors(t, req.Validate()), "notes")

	req = UpdateAttendanceRequest{ID: "a1"}
	assert.Contains(t, fieldErrors(t, req.Validate()), "body")
}

func TestRejectAttendanceRequest_RequiresReason(t *testing.T) {
	req := RejectAttendanceRequest{ID: "a1", Reason: "  "}
	assert.Equal(t, "rejection reason is required", fieldErrors(t, req.Validate())["reason"])
}
