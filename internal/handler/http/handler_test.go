package http

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/auth"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/notification"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/handler/http/middleware"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/geocode"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/jwt"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/sse"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/storage"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/repository/memory"
	attendanceService "github.com/ojt-track/ojt-attendance-backend-go/internal/service/attendance"
	authService "github.com/ojt-track/ojt-attendance-backend-go/internal/service/auth"
	dashboardService "github.com/ojt-track/ojt-attendance-backend-go/internal/service/dashboard"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/service/file"
	geofenceService "github.com/ojt-track/ojt-attendance-backend-go/internal/service/geofence"
	internService "github.com/ojt-track/ojt-attendance-backend-go/internal/service/intern"
	leaveService "github.com/ojt-track/ojt-attendance-backend-go/internal/service/leave"
	notificationService "github.com/ojt-track/ojt-attendance-backend-go/internal/service/notification"
	reportService "github.com/ojt-track/ojt-attendance-backend-go/internal/service/report"
	scheduleService "github.com/ojt-track/ojt-attendance-backend-go/internal/service/schedule"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestAccessExp  = "1h"
	handlerTestRefreshExp = "24h"
	handlerTestSecret     = "test-secret-key-for-jwt"

	adminEmail    = "admin@example.com"
	adminPassword = "AdminPass123"

	officeLat = 14.5995
	officeLng = 120.9842
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type apiFixture struct {
	t        *testing.T
	store    *memory.Store
	jwt      *jwt.JWTService
	notifier notification.Service
	handler  http.Handler
}

func newAPIFixture(t *testing.T, clockPerMinute int) *apiFixture {
	t.Helper()

	store := memory.NewStore()
	jwtSvc, err := jwt.NewJWTService(handlerTestSecret, handlerTestAccessExp, handlerTestRefreshExp, false)
	require.NoError(t, err)

	photos, err := storage.NewLocalStorage(t.TempDir(), "http://localhost/storage")
	require.NoError(t, err)

	notifier := notificationService.NewNotificationService(sse.NewHub(8), notificationService.Config{WorkerCount: 1, QueueSize: 16})
	t.Cleanup(notifier.Stop)

	authSvc := authService.NewAuthService(store, store.Users(), jwtSvc, store.RefreshTokens())
	require.NoError(t, authSvc.EnsureAdmin(context.Background(), "Admin", adminEmail, adminPassword))

	attendanceSvc := attendanceService.NewAttendanceService(
		store,
		store.Attendance(),
		store.Interns(),
		store.Geofences(),
		store.Schedules(),
		file.NewFileService(photos),
		geocode.Noop{},
		notifier,
		nil,
	)

	handler := NewRouter(
		RouterConfig{Env: "test", AllowedOrigins: []string{"http://localhost:3000"}},
		jwtSvc,
		Handlers{
			Auth:         NewAuthHandler(jwtSvc, authSvc),
			Intern:       NewInternHandler(internService.NewInternService(store.Interns())),
			Attendance:   NewAttendanceHandler(attendanceSvc),
			Approval:     NewApprovalHandler(attendanceSvc),
			Leave:        NewLeaveHandler(leaveService.NewLeaveService(store, store.Leaves(), store.Interns(), notifier)),
			Geofence:     NewGeofenceHandler(geofenceService.NewGeofenceService(store.Geofences())),
			Schedule:     NewScheduleHandler(scheduleService.NewScheduleService(store, store.Schedules(), store.Interns())),
			Report:       NewReportHandler(reportService.NewReportService(store.Reports(), nil)),
			Dashboard:    NewDashboardHandler(dashboardService.NewDashboardService(store.Dashboard(), nil)),
			Notification: NewNotificationHandler(notifier, jwtSvc),
		},
		middleware.NewUserRateLimiter(clockPerMinute),
	)

	return &apiFixture{
		t:        t,
		store:    store,
		jwt:      jwtSvc,
		notifier: notifier,
		handler:  handler,
	}
}

func (f *apiFixture) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	f.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(f.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func (f *apiFixture) login(email, password string) auth.TokenResponse {
	f.t.Helper()
	rec := f.do(http.MethodPost, "/api/v1/auth/login", "", auth.LoginRequest{Email: email, Password: password})
	require.Equal(f.t, http.StatusCreated, rec.Code, rec.Body.String())

	var tokens auth.TokenResponse
	decode(f.t, rec, &tokens)
	return tokens
}

func (f *apiFixture) adminToken() string {
	return f.login(adminEmail, adminPassword).AccessToken
}

// registerIntern signs up a user and creates the intern profile.
func (f *apiFixture) registerIntern(name, email string) string {
	f.t.Helper()
	rec := f.do(http.MethodPost, "/api/v1/auth/register", "", auth.RegisterRequest{
		Name:            name,
		Email:           email,
		Password:        "InternPass123",
		ConfirmPassword: "InternPass123",
	})
	require.Equal(f.t, http.StatusCreated, rec.Code, rec.Body.String())

	var tokens auth.TokenResponse
	decode(f.t, rec, &tokens)

	rec = f.do(http.MethodPost, "/api/v1/interns/me", tokens.AccessToken, map[string]interface{}{
		"student_id": email,
		"full_name":  name,
		"school":     "State University",
		"course":     "BSIT",
		"start_date": "2025-01-06",
	})
	require.Equal(f.t, http.StatusCreated, rec.Code, rec.Body.String())
	return tokens.AccessToken
}

func (f *apiFixture) createGeofence(adminToken string) string {
	f.t.Helper()
	rec := f.do(http.MethodPost, "/api/v1/geofences", adminToken, map[string]interface{}{
		"name":          "Main Office",
		"latitude":      officeLat,
		"longitude":     officeLng,
		"radius_meters": 100,
	})
	require.Equal(f.t, http.StatusCreated, rec.Code, rec.Body.String())

	var zone struct {
		ID string `json:"id"`
	}
	decode(f.t, rec, &zone)
	return zone.ID
}

func photoDataURL(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 24))
	for x := 0; x < 32; x++ {
		for y := 0; y < 24; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 8), G: uint8(y * 10), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func clockBody(t *testing.T, lat, lng float64, zoneID string) map[string]interface{} {
	body := map[string]interface{}{
		"location_lat": lat,
		"location_lng": lng,
		"photo":        photoDataURL(t),
	}
	if zoneID != "" {
		body["geofence_location_id"] = zoneID
	}
	return body
}
