package attendance

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/attendance"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/geofence"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/intern"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/notification"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/schedule"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/user"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/evaluator"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/jwt"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/validator"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var manila = time.FixedZone("PHT", 8*3600)

const testPhoto = "data:image/jpeg;base64,aGVsbG8="

type fakeFiles struct {
	mu      sync.Mutex
	seq     int
	stored  map[string]bool
	deleted []string
	fail    error
}

func newFakeFiles() *fakeFiles {
	return &fakeFiles{stored: make(map[string]bool)}
}

func (f *fakeFiles) StoreAttendancePhoto(_ context.Context, internID string, date time.Time, kind string, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return "", f.fail
	}
	f.seq++
	key := fmt.Sprintf("attendance/%s/%s/%s-%d.jpg", internID, date.Format(dateLayout), kind, f.seq)
	f.stored[key] = true
	return key, nil
}

func (f *fakeFiles) DeleteFile(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.stored, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeFiles) FileURL(key string) string {
	return "http://files.test/" + key
}

type fakeGeocoder struct {
	address string
	err     error
}

func (g fakeGeocoder) ReverseGeocode(context.Context, float64, float64) (string, error) {
	return g.address, g.err
}

// stallingGeocoder answers only when the caller gives up.
type stallingGeocoder struct{}

func (stallingGeocoder) ReverseGeocode(ctx context.Context, _, _ float64) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []notification.Notification
}

func (r *recordingNotifier) Notify(_ context.Context, n notification.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
	return nil
}

func (r *recordingNotifier) Subscribe(context.Context, string) (<-chan notification.Event, func()) {
	ch := make(chan notification.Event)
	return ch, func() {}
}

func (r *recordingNotifier) Stop() {}

type fixture struct {
	store    *memory.Store
	svc      *AttendanceServiceImpl
	files    *fakeFiles
	notifier *recordingNotifier
	intern   intern.Intern
	ctx      context.Context
	now      time.Time
}

// newFixture seeds one active intern with an 08:00-17:00 Monday schedule
// and a clock fixed to Monday 2025-03-03 in Manila.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	files := newFakeFiles()
	notifier := &recordingNotifier{}

	f := &fixture{
		store:    store,
		files:    files,
		notifier: notifier,
		now:      time.Date(2025, time.March, 3, 8, 5, 0, 0, manila),
	}

	svc := NewAttendanceService(store, store.Attendance(), store.Interns(), store.Geofences(), store.Schedules(),
		files, fakeGeocoder{address: "Ayala Ave, Makati"}, notifier, manila).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return f.now }
	f.svc = svc

	ctx := context.Background()
	u, err := store.Users().Create(ctx, user.User{Name: "Ana", Email: "ana@example.com", Role: user.RoleIntern, IsActive: true})
	require.NoError(t, err)
	f.intern, err = store.Interns().Create(ctx, intern.Intern{
		UserID: u.ID, StudentID: "2021-0001", FullName: "Ana Cruz", School: "SU", Course: "BSIT",
		RequiredHours: 486, StartDate: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), IsActive: true,
	})
	require.NoError(t, err)
	_, err = store.Schedules().Upsert(ctx, schedule.Schedule{
		InternID: f.intern.ID, DayOfWeek: int(time.Monday),
		StartTime: evaluator.NewTimeOfDay(8, 0), EndTime: evaluator.NewTimeOfDay(17, 0),
		BreakDuration: 60, IsActive: true,
	})
	require.NoError(t, err)

	f.ctx = jwt.NewContext(ctx, jwt.Claims{UserID: u.ID, Email: u.Email, Role: user.RoleIntern})
	return f
}

func (f *fixture) at(hour, minute int) {
	f.now = time.Date(2025, time.March, 3, hour, minute, 0, 0, manila)
}

func (f *fixture) addZone(t *testing.T, active bool) string {
	t.Helper()
	g, err := f.store.Geofences().Create(context.Background(), geofence.GeofenceLocation{
		Name: "Main Office", Latitude: 14.0, Longitude: 121.0, RadiusMeters: 100, IsActive: active,
	})
	require.NoError(t, err)
	return g.ID
}

var supervisorCtx = jwt.NewContext(context.Background(), jwt.Claims{UserID: "sup-1", Role: user.RoleSupervisor})

func clockIn(lat, lng float64, zoneID *string) attendance.ClockInRequest {
	return attendance.ClockInRequest{Latitude: &lat, Longitude: &lng, Photo: testPhoto, GeofenceLocationID: zoneID}
}

func clockOut(lat, lng float64, zoneID *string) attendance.ClockOutRequest {
	return attendance.ClockOutRequest{Latitude: &lat, Longitude: &lng, Photo: testPhoto, GeofenceLocationID: zoneID}
}

func ptr(s string) *string { return &s }

func TestClockIn_InsideZone(t *testing.T) {
	f := newFixture(t)
	zoneID := f.addZone(t, true)

	resp, err := f.svc.ClockIn(f.ctx, clockIn(14.0005, 121.0, &zoneID))
	require.NoError(t, err)

	assert.Equal(t, "2025-03-03", resp.Date)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "web", resp.ClockInMethod)
	assert.False(t, resp.IsLate)
	require.NotNil(t, resp.DistanceMeters)
	assert.InDelta(t, 55.6, *resp.DistanceMeters, 0.5)
	require.NotNil(t, resp.LocationAddress)
	assert.Equal(t, "Ayala Ave, Makati", *resp.LocationAddress)
	require.NotNil(t, resp.GeofenceName)
	assert.Equal(t, "Main Office", *resp.GeofenceName)
	require.NotNil(t, resp.ClockInPhoto)
	assert.Contains(t, *resp.ClockInPhoto, "http://files.test/attendance/")
	require.NotNil(t, resp.ClockInTime)
	assert.Equal(t, "2025-03-03T08:05:00+08:00", *resp.ClockInTime)
}

func TestClockIn_Late(t *testing.T) {
	f := newFixture(t)
	f.at(8, 20)

	resp, err := f.svc.ClockIn(f.ctx, clockIn(14.0, 121.0, nil))
	require.NoError(t, err)
	assert.True(t, resp.IsLate)
	assert.Nil(t, resp.DistanceMeters)
}

func TestClockIn_NoScheduleIsNeverLate(t *testing.T) {
	f := newFixture(t)
	f.now = time.Date(2025, time.March, 4, 11, 0, 0, 0, manila) // Tuesday

	resp, err := f.svc.ClockIn(f.ctx, clockIn(14.0, 121.0, nil))
	require.NoError(t, err)
	assert.False(t, resp.IsLate)
	assert.Equal(t, "2025-03-04", resp.Date)
}

func TestClockIn_OutsideZone(t *testing.T) {
	f := newFixture(t)
	zoneID := f.addZone(t, true)

	_, err := f.svc.ClockIn(f.ctx, clockIn(14.01, 121.0, &zoneID))

	var violation *evaluator.ZoneViolationError
	require.True(t, errors.As(err, &violation))
	assert.InDelta(t, 1112, violation.DistanceMeters, 2)
	assert.Equal(t, 100, violation.RadiusMeters)
	assert.Empty(t, f.files.stored, "no photo is stored for a rejected clock-in")

	today, err := f.svc.GetToday(f.ctx)
	require.NoError(t, err)
	assert.Nil(t, today.Attendance)
}

func TestClockIn_InvalidGeofence(t *testing.T) {
	f := newFixture(t)
	inactive := f.addZone(t, false)
	missing := "5f0c6a8e-3b1d-4c47-9d59-0a3e7f2b9c11"

	_, err := f.svc.ClockIn(f.ctx, clockIn(14.0, 121.0, &inactive))
	assert.ErrorIs(t, err, attendance.ErrInvalidGeofence)

	_, err = f.svc.ClockIn(f.ctx, clockIn(14.0, 121.0, &missing))
	assert.ErrorIs(t, err, attendance.ErrInvalidGeofence)
}

func TestClockIn_Twice(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ClockIn(f.ctx, clockIn(14.0, 121.0, nil))
	require.NoError(t, err)

	f.at(9, 0)
	_, err = f.svc.ClockIn(f.ctx, clockIn(14.0, 121.0, nil))
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
}

func TestClockIn_ConcurrentOnlyOneSucceeds(t *testing.T) {
	f := newFixture(t)

	const attempts = 10
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	start := make(chan struct{})
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := f.svc.ClockIn(f.ctx, clockIn(14.0, 121.0, nil))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, attendance.ErrAlreadyClockedIn):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, conflicts)
	assert.Len(t, f.files.stored, 1, "photos of losing attempts are deleted")
}

func TestClockIn_InactiveIntern(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u, err := f.store.Users().Create(ctx, user.User{Name: "Ben", Email: "ben@example.com", Role: user.RoleIntern, IsActive: true})
	require.NoError(t, err)
	_, err = f.store.Interns().Create(ctx, intern.Intern{
		UserID: u.ID, StudentID: "2021-0002", FullName: "Ben", School: "SU", Course: "BSIT",
		StartDate: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), IsActive: false,
	})
	require.NoError(t, err)

	benCtx := jwt.NewContext(ctx, jwt.Claims{UserID: u.ID, Role: user.RoleIntern})
	_, err = f.svc.ClockIn(benCtx, clockIn(14.0, 121.0, nil))
	assert.ErrorIs(t, err, intern.ErrInternInactive)
}

func TestClockIn_ValidationAndNoProfile(t *testing.T) {
	f := newFixture(t)

	lat := 91.0
	_, err := f.svc.ClockIn(f.ctx, attendance.ClockInRequest{Latitude: &lat})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "location_lat")
	assert.Equal(t, "location_lng is required", verrs.ToMap()["location_lng"])
	assert.Contains(t, verrs.ToMap(), "photo")

	noProfile := jwt.NewContext(context.Background(), jwt.Claims{UserID: "nobody", Role: user.RoleIntern})
	_, err = f.svc.ClockIn(noProfile, clockIn(14.0, 121.0, nil))
	assert.ErrorIs(t, err, intern.ErrInternNotFound)
}

func TestClockIn_PhotoStorageFailure(t *testing.T) {
	f := newFixture(t)
	f.files.fail = errors.New("disk full")

	_, err := f.svc.ClockIn(f.ctx, clockIn(14.0, 121.0, nil))
	assert.ErrorContains(t, err, "disk full")

	today, err := f.svc.GetToday(f.ctx)
	require.NoError(t, err)
	assert.Nil(t, today.Attendance)
	assert.True(t, today.CanClockIn)
}

func TestClockIn_GeocoderFailureIsSoft(t *testing.T) {
	f := newFixture(t)
	f.svc.geocoder = fakeGeocoder{err: errors.New("timeout")}

	resp, err := f.svc.ClockIn(f.ctx, clockIn(14.0, 121.0, nil))
	require.NoError(t, err)
	assert.Nil(t, resp.LocationAddress)
}

func TestClockOut_FullDayWithBreak(t *testing.T) {
	f := newFixture(t)
	f.at(8, 0)
	_, err := f.svc.ClockIn(f.ctx, clockIn(14.0, 121.0, nil))
	require.NoError(t, err)

	f.at(12, 0)
	_, err = f.svc.StartBreak(f.ctx)
	require.NoError(t, err)
	f.at(13, 0)
	_, err = f.svc.EndBreak(f.ctx)
	require.NoError(t, err)

	f.at(17, 0)
	resp, err := f.svc.ClockOut(f.ctx, clockOut(14.0, 121.0, nil))
	require.NoError(t, err)

	require.NotNil(t, resp.TotalHours)
	assert.Equal(t, 8.0, *resp.TotalHours)
	assert.False(t, resp.IsUndertime)
	assert.False(t, resp.IsOvertime)
	require.NotNil(t, resp.ClockOutPhoto)
}

func TestClockOut_Overtime(t *testing.T) {
	f := newFixture(t)
	f.at(8, 0)
	_, err := f.svc.ClockIn(f.ctx, clockIn(14.0, 121.0, nil))
	require.NoError(t, err)

	f.at(19, 0)
	resp, err := f.svc.ClockOut(f.ctx, clockOut(14.0, 121.0, nil))
	require.NoError(t, err)
	assert.Equal(t, 11.0, *resp.TotalHours)
	assert.True(t, resp.IsOvertime)

	approvals, err := f.svc.ListApprovals(supervisorCtx, attendance.AttendanceFilter{})
	require.NoError(t, err)
	require.Len(t, approvals.Approvals, 1)
	assert.Equal(t, "Overtime", approvals.Approvals[0].Type)
}

func TestClockOut_OpenBreakEndsAtClockOut(t *testing.T) {
	f := newFixture(t)
	f.at(8, 0)
	_, err := f.svc.ClockIn(f.ctx, clockIn(14.0, 121.0, nil))
	require.NoError(t, err)
	f.at(12, 0)
	_, err = f.svc.StartBreak(f.ctx)
	require.NoError(t, err)

	f.at(13, 0)
	resp, err := f.svc.ClockOut(f.ctx, clockOut(14.0, 121.0, nil))
	require.NoError(t, err)
	assert.Equal(t, 4.0, *resp.TotalHours)
	assert.True(t, resp.IsUndertime)
	assert.NotNil(t, resp.BreakEnd)
}

func TestClockOut_StateErrors(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ClockOut(f.ctx, clockOut(14.0, 121.0, nil))
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)

	_, err = f.svc.StartBreak(f.ctx)
	assert.ErrorIs(t, err, attendance.ErrNotClockedIn)

	_, err = f.svc.ClockIn(f.ctx, clockIn(14.0, 121.0, nil))
	require.NoError(t, err)

	_, err = f.svc.EndBreak(f.ctx)
	assert.ErrorIs(t, err, attendance.ErrBreakNotStarted)

	f.at(17, 0)
	_, err = f.svc.ClockOut(f.ctx, clockOut(14.0, 121.0, nil))
	require.NoError(t, err)

	_, err = f.svc.ClockOut(f.ctx, clockOut(14.0, 121.0, nil))
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)

	_, err = f.svc.StartBreak(f.ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedOut)

	today, err := f.svc.GetToday(f.ctx)
	require.NoError(t, err)
	assert.False(t, today.CanClockIn)
	assert.False(t, today.CanClockOut)
}

func TestClockOut_OutsideZoneKeepsSessionOpen(t *testing.T) {
	f := newFixture(t)
	zoneID := f.addZone(t, true)
	_, err := f.svc.ClockIn(f.ctx, clockIn(14.0, 121.0, &zoneID))
	require.NoError(t, err)

	f.at(17, 0)
	_, err = f.svc.ClockOut(f.ctx, clockOut(14.02, 121.0, &zoneID))
	assert.ErrorIs(t, err, evaluator.ErrOutsideZone)

	today, err := f.svc.GetToday(f.ctx)
	require.NoError(t, err)
	assert.True(t, today.CanClockOut)
}

func TestGetToday_WithSchedule(t *testing.T) {
	f := newFixture(t)

	today, err := f.svc.GetToday(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-03", today.Date)
	assert.True(t, today.HasSchedule)
	assert.Equal(t, "08:00", *today.ScheduleStart)
	assert.Equal(t, "17:00", *today.ScheduleEnd)
	assert.Equal(t, 8.0, *today.ScheduledHours)
	assert.True(t, today.CanClockIn)
	assert.False(t, today.CanClockOut)
}

func TestApproveAndReject(t *testing.T) {
	f := newFixture(t)
	resp, err := f.svc.ClockIn(f.ctx, clockIn(14.0, 121.0, nil))
	require.NoError(t, err)

	notes := "ok"
	approved, err := f.svc.ApproveAttendance(supervisorCtx, attendance.ApproveAttendanceRequest{ID: resp.ID, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, "sup-1", *approved.ApprovedBy)
	assert.Equal(t, "ok", *approved.Notes)

	_, err = f.svc.RejectAttendance(supervisorCtx, attendance.RejectAttendanceRequest{ID: resp.ID, Reason: "late"})
	assert.ErrorIs(t, err, attendance.ErrAttendanceAlreadyProcessed)

	_, err = f.svc.ApproveAttendance(supervisorCtx, attendance.ApproveAttendanceRequest{ID: resp.ID})
	assert.ErrorIs(t, err, attendance.ErrAttendanceAlreadyProcessed)

	require.Len(t, f.notifier.sent, 1)
	assert.Equal(t, notification.TypeAttendanceApproved, f.notifier.sent[0].Type)
	assert.Equal(t, f.intern.UserID, f.notifier.sent[0].RecipientID)
}

func TestReject_RequiresReason(t *testing.T) {
	f := newFixture(t)
	resp, err := f.svc.ClockIn(f.ctx, clockIn(14.0, 121.0, nil))
	require.NoError(t, err)

	_, err = f.svc.RejectAttendance(supervisorCtx, attendance.RejectAttendanceRequest{ID: resp.ID})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	rejected, err := f.svc.RejectAttendance(supervisorCtx, attendance.RejectAttendanceRequest{ID: resp.ID, Reason: "wrong location"})
	require.NoError(t, err)
	assert.Equal(t, "rejected", rejected.Status)
	assert.Equal(t, "wrong location", *rejected.RejectionReason)
	assert.Equal(t, notification.TypeAttendanceRejected, f.notifier.sent[0].Type)
}

func TestUpdateAttendance_RecomputesHours(t *testing.T) {
	f := newFixture(t)
	f.at(8, 30)
	resp, err := f.svc.ClockIn(f.ctx, clockIn(14.0, 121.0, nil))
	require.NoError(t, err)
	assert.True(t, resp.IsLate)

	in := "2025-03-03T08:00:00+08:00"
	out := "2025-03-03T16:00:00+08:00"
	updated, err := f.svc.UpdateAttendance(supervisorCtx, attendance.UpdateAttendanceRequest{ID: resp.ID, ClockInTime: &in, ClockOutTime: &out})
	require.NoError(t, err)

	assert.False(t, updated.IsLate)
	assert.Equal(t, 8.0, *updated.TotalHours)
	assert.False(t, updated.IsUndertime)
	assert.Equal(t, notification.TypeAttendanceUpdated, f.notifier.sent[0].Type)

	early := "2025-03-03T07:00:00+08:00"
	_, err = f.svc.UpdateAttendance(supervisorCtx, attendance.UpdateAttendanceRequest{ID: resp.ID, ClockOutTime: &early})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestClockIn_SlowGeocoderDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	f.svc.geocoder = stallingGeocoder{}
	f.svc.geocodeTimeout = 50 * time.Millisecond

	start := time.Now()
	resp, err := f.svc.ClockIn(f.ctx, clockIn(14.0, 121.0, nil))
	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second)
	assert.Nil(t, resp.LocationAddress)
}

func TestUpdateAttendance_KeepsBreakInsideShift(t *testing.T) {
	f := newFixture(t)
	f.at(8, 0)
	resp, err := f.svc.ClockIn(f.ctx, clockIn(14.0, 121.0, nil))
	require.NoError(t, err)
	f.at(12, 0)
	_, err = f.svc.StartBreak(f.ctx)
	require.NoError(t, err)
	f.at(13, 0)
	_, err = f.svc.EndBreak(f.ctx)
	require.NoError(t, err)

	tests := []struct {
		name    string
		in, out *string
		field   string
	}{
		{name: "clock-out before break start", out: ptr("2025-03-03T11:00:00+08:00"), field: "clock_out_time"},
		{name: "clock-out inside break", out: ptr("2025-03-03T12:30:00+08:00"), field: "clock_out_time"},
		{name: "clock-in after break start", in: ptr("2025-03-03T12:30:00+08:00"), out: ptr("2025-03-03T17:00:00+08:00"), field: "clock_in_time"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.UpdateAttendance(supervisorCtx, attendance.UpdateAttendanceRequest{ID: resp.ID, ClockInTime: tt.in, ClockOutTime: tt.out})
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), tt.field)
		})
	}

	out := "2025-03-03T17:00:00+08:00"
	updated, err := f.svc.UpdateAttendance(supervisorCtx, attendance.UpdateAttendanceRequest{ID: resp.ID, ClockOutTime: &out})
	require.NoError(t, err)
	assert.Equal(t, 8.0, *updated.TotalHours, "09:00 less the one hour break")
}

func TestUpdateAttendance_ClosesOpenBreakAtClockOut(t *testing.T) {
	f := newFixture(t)
	f.at(8, 0)
	resp, err := f.svc.ClockIn(f.ctx, clockIn(14.0, 121.0, nil))
	require.NoError(t, err)
	f.at(16, 0)
	_, err = f.svc.StartBreak(f.ctx)
	require.NoError(t, err)

	out := "2025-03-03T17:00:00+08:00"
	updated, err := f.svc.UpdateAttendance(supervisorCtx, attendance.UpdateAttendanceRequest{ID: resp.ID, ClockOutTime: &out})
	require.NoError(t, err)
	assert.Equal(t, 8.0, *updated.TotalHours)
	require.NotNil(t, updated.BreakEnd)
}

func TestGetAttendance_InternsReadOwnOnly(t *testing.T) {
	f := newFixture(t)
	resp, err := f.svc.ClockIn(f.ctx, clockIn(14.0, 121.0, nil))
	require.NoError(t, err)

	got, err := f.svc.GetAttendance(f.ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, resp.ID, got.ID)

	other := jwt.NewContext(context.Background(), jwt.Claims{UserID: "someone-else", Role: user.RoleIntern})
	_, err = f.svc.GetAttendance(other, resp.ID)
	assert.ErrorIs(t, err, attendance.ErrUnauthorized)

	_, err = f.svc.GetAttendance(supervisorCtx, resp.ID)
	assert.NoError(t, err)
}

func TestHistoryAndList(t *testing.T) {
	f := newFixture(t)
	for day := 3; day <= 5; day++ {
		f.now = time.Date(2025, time.March, day, 8, 0, 0, 0, manila)
		_, err := f.svc.ClockIn(f.ctx, clockIn(14.0, 121.0, nil))
		require.NoError(t, err)
	}

	history, err := f.svc.GetMyHistory(f.ctx, attendance.AttendanceFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), history.TotalCount)
	assert.Equal(t, 2, history.TotalPages)
	assert.Equal(t, "1-2 of 3", history.Showing)
	require.Len(t, history.Attendances, 2)
	assert.Equal(t, "2025-03-05", history.Attendances[0].Date)

	start, end := "2025-03-04", "2025-03-04"
	list, err := f.svc.ListAttendance(supervisorCtx, attendance.AttendanceFilter{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	require.Len(t, list.Attendances, 1)
	assert.Equal(t, "Ana Cruz", list.Attendances[0].InternName)

	_, err = f.svc.ListAttendance(supervisorCtx, attendance.AttendanceFilter{SortBy: "photo"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}
