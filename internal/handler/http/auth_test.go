package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func refreshCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == "refresh_token" {
			return c
		}
	}
	return nil
}

func TestAuthHandler_Register_Success(t *testing.T) {
	f := newAPIFixture(t, 10)

	rec := f.do(http.MethodPost, "/api/v1/auth/register", "", auth.RegisterRequest{
		Name:            "Ana Cruz",
		Email:           "ana@example.com",
		Password:        "SecurePass123",
		ConfirmPassword: "SecurePass123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var tokens auth.TokenResponse
	env := decode(t, rec, &tokens)
	assert.True(t, env.Success)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	cookie := refreshCookie(rec)
	require.NotNil(t, cookie)
	assert.Equal(t, tokens.RefreshToken, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	rec = f.do(http.MethodGet, "/api/v1/auth/me", tokens.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me auth.MeResponse
	decode(t, rec, &me)
	assert.Equal(t, "ana@example.com", me.Email)
	assert.Equal(t, "intern", me.Role)
	assert.Nil(t, me.InternID)
}

func TestAuthHandler_Register_ValidationError(t *testing.T) {
	f := newAPIFixture(t, 10)

	rec := f.do(http.MethodPost, "/api/v1/auth/register", "", auth.RegisterRequest{
		Name:            "",
		Email:           "not-an-email",
		Password:        "short",
		ConfirmPassword: "different",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	env := decode(t, rec, nil)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Details, "name")
	assert.Contains(t, env.Error.Details, "email")
	assert.Contains(t, env.Error.Details, "password")
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	f := newAPIFixture(t, 10)

	rec := f.do(http.MethodPost, "/api/v1/auth/register", "", auth.RegisterRequest{
		Name:            "Someone",
		Email:           adminEmail,
		Password:        "SecurePass123",
		ConfirmPassword: "SecurePass123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthHandler_Register_InvalidJSON(t *testing.T) {
	f := newAPIFixture(t, 10)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", nil)
	req.Body = http.NoBody
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	f := newAPIFixture(t, 10)

	tokens := f.login(adminEmail, adminPassword)
	assert.NotEmpty(t, tokens.AccessToken)

	rec := f.do(http.MethodPost, "/api/v1/auth/login", "", auth.LoginRequest{Email: adminEmail, Password: "WrongPass123"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(http.MethodPost, "/api/v1/auth/login", "", auth.LoginRequest{Email: "nobody@example.com", Password: "WrongPass123"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	f := newAPIFixture(t, 10)
	tokens := f.login(adminEmail, adminPassword)

	rec := f.do(http.MethodPost, "/api/v1/auth/refresh", "", auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var refreshed auth.AccessTokenResponse
	decode(t, rec, &refreshed)
	assert.NotEmpty(t, refreshed.AccessToken)

	rec = f.do(http.MethodPost, "/api/v1/auth/refresh", "", auth.RefreshTokenRequest{RefreshToken: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandler_LogoutRevokesBothTokens(t *testing.T) {
	f := newAPIFixture(t, 10)
	tokens := f.login(adminEmail, adminPassword)

	rec := f.do(http.MethodPost, "/api/v1/auth/logout", tokens.AccessToken, auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	cookie := refreshCookie(rec)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)

	rec = f.do(http.MethodGet, "/api/v1/auth/me", tokens.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "access token is revoked")

	rec = f.do(http.MethodPost, "/api/v1/auth/refresh", "", auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "refresh token is revoked")
}

func TestAuthRequired(t *testing.T) {
	f := newAPIFixture(t, 10)

	rec := f.do(http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.do(http.MethodGet, "/api/v1/auth/me", "not.a.jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// refresh tokens are not accepted as access tokens
	tokens := f.login(adminEmail, adminPassword)
	rec = f.do(http.MethodGet, "/api/v1/auth/me", tokens.RefreshToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequirePermission(t *testing.T) {
	f := newAPIFixture(t, 10)
	admin := f.adminToken()
	intern := f.registerIntern("Ana Cruz", "ana@example.com")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   interface{}
		want   int
	}{
		{"intern cannot list all attendance", http.MethodGet, "/api/v1/attendance", intern, nil, http.StatusForbidden},
		{"intern cannot approve", http.MethodGet, "/api/v1/approvals/pending", intern, nil, http.StatusForbidden},
		{"intern cannot manage geofences", http.MethodPost, "/api/v1/geofences", intern, map[string]interface{}{"name": "x"}, http.StatusForbidden},
		{"intern cannot view reports", http.MethodGet, "/api/v1/reports/dtr", intern, nil, http.StatusForbidden},
		{"intern cannot view dashboard", http.MethodGet, "/api/v1/dashboard/stats", intern, nil, http.StatusForbidden},
		{"admin cannot clock in", http.MethodPost, "/api/v1/attendance/clock-in", admin, clockBody(t, officeLat, officeLng, ""), http.StatusForbidden},
		{"admin cannot file leaves", http.MethodPost, "/api/v1/leaves", admin, map[string]interface{}{}, http.StatusForbidden},
		{"intern views geofences", http.MethodGet, "/api/v1/geofences", intern, nil, http.StatusOK},
		{"admin views dashboard", http.MethodGet, "/api/v1/dashboard/stats", admin, nil, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}
