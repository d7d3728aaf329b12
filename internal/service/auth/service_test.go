package auth

import (
	"context"
	"testing"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/auth"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/user"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/jwt"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAccessExp  = "1h"
	testRefreshExp = "24h"
	testSecret     = "test-secret-key-for-jwt"
)

var testSession = auth.SessionTrackingRequest{IPAddress: "127.0.0.1", UserAgent: "Mozilla/5.0"}

func newTestAuthService(t *testing.T) (auth.AuthService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	jwtService, err := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp, false)
	require.NoError(t, err)
	return NewAuthService(store, store.Users(), jwtService, store.RefreshTokens()), store
}

func register(t *testing.T, svc auth.AuthService, email string) auth.TokenResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), auth.RegisterRequest{
		Name:            "Maria Santos",
		Email:           email,
		Password:        "password123",
		ConfirmPassword: "password123",
	}, testSession)
	require.NoError(t, err)
	return resp
}

func TestAuthService_Register_CreatesIntern(t *testing.T) {
	svc, store := newTestAuthService(t)

	resp := register(t, svc, "maria@example.com")
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Greater(t, resp.RefreshTokenExpiresIn, resp.AccessTokenExpiresIn)

	u, err := store.Users().GetByEmail(context.Background(), "maria@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.RoleIntern, u.Role)
	assert.NotEqual(t, "password123", u.PasswordHash)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)
	register(t, svc, "dup@example.com")

	_, err := svc.Register(context.Background(), auth.RegisterRequest{
		Name: "Other", Email: "DUP@example.com", Password: "password123", ConfirmPassword: "password123",
	}, testSession)
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestAuthService_Login(t *testing.T) {
	svc, _ := newTestAuthService(t)
	register(t, svc, "login@example.com")
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		resp, err := svc.Login(ctx, auth.LoginRequest{Email: "login@example.com", Password: "password123"}, testSession)
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{Email: "login@example.com", Password: "wrongpass1"}, testSession)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{Email: "ghost@example.com", Password: "password123"}, testSession)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestAuthService_RefreshAndLogout(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()
	tokens := register(t, svc, "refresh@example.com")

	access, err := svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, access.AccessToken)

	require.NoError(t, svc.Logout(ctx, tokens.RefreshToken))

	_, err = svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)

	// logging out twice is harmless
	assert.NoError(t, svc.Logout(ctx, tokens.RefreshToken))
}

func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	svc, _ := newTestAuthService(t)
	tokens := register(t, svc, "wrongtype@example.com")

	_, err := svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: tokens.AccessToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthService_Me(t *testing.T) {
	svc, store := newTestAuthService(t)
	register(t, svc, "me@example.com")

	u, err := store.Users().GetByEmail(context.Background(), "me@example.com")
	require.NoError(t, err)

	ctx := jwt.NewContext(context.Background(), jwt.Claims{UserID: u.ID, Email: u.Email, Role: u.Role})
	me, err := svc.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Maria Santos", me.Name)
	assert.Equal(t, "intern", me.Role)
	assert.Nil(t, me.InternID)

	_, err = svc.Me(context.Background())
	assert.ErrorIs(t, err, auth.ErrMissingClaims)
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	svc, store := newTestAuthService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "Administrator", "admin@example.com", "supersecret"))
	admin, err := store.Users().GetByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.RoleAdmin, admin.Role)

	// second call is a no-op even with different credentials
	require.NoError(t, svc.EnsureAdmin(ctx, "Other", "other@example.com", "supersecret"))
	exists, err := store.Users().ExistsByEmail(ctx, "other@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = svc.Login(ctx, auth.LoginRequest{Email: "admin@example.com", Password: "supersecret"}, testSession)
	assert.NoError(t, err)
}
