package auth

import (
	"context"
)

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest, session SessionTrackingRequest) (TokenResponse, error)
	Login(ctx context.Context, req LoginRequest, session SessionTrackingRequest) (TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context) (MeResponse, error)
	// EnsureAdmin creates the first administrator if no admin account exists yet.
	EnsureAdmin(ctx context.Context, name, email, password string) error
}
