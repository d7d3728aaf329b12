package jwt

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/auth"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/user"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
	TokenTypeSSE     = "sse"

	sseTokenTTL = 5 * time.Minute
)

// Claims is the identity carried by an access token.
type Claims struct {
	UserID string
	Email  string
	Role   user.Role
}

type Service interface {
	GenerateAccessToken(userID string, email string, role user.Role) (token string, expiresAt int64, err error)
	GenerateRefreshToken(userID string) (token string, expiresAt int64, err error)
	GenerateSSEToken(userID string) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (userID string, err error)
	ParseRefreshToken(tokenString string) (userID string, err error)
	JWTAuth() *jwtauth.JWTAuth
	RefreshTokenCookie(token string, expiresAt int64) *http.Cookie
	RevokeToken(token string, expiresAt int64)
	IsTokenRevoked(token string) bool
}

type JWTService struct {
	accessTokenExpirationTime  time.Duration
	refreshTokenExpirationTime time.Duration
	secureCookie               bool
	tokenAuth                  *jwtauth.JWTAuth
	now                        func() time.Time

	mu            sync.RWMutex
	revokedTokens map[string]int64 // token -> exp unix
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// NewJWTService parses both lifetimes up front so token generation cannot
// fail on configuration.
func NewJWTService(secretKey, accessTokenExpirationTime, refreshTokenExpirationTime string, secureCookie bool) (*JWTService, error) {
	accessTTL, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("parse access token lifetime: %w", err)
	}
	refreshTTL, err := time.ParseDuration(refreshTokenExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("parse refresh token lifetime: %w", err)
	}

	return &JWTService{
		accessTokenExpirationTime:  accessTTL,
		refreshTokenExpirationTime: refreshTTL,
		secureCookie:               secureCookie,
		tokenAuth:                  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		now:                        time.Now,
		revokedTokens:              make(map[string]int64),
	}, nil
}

func (j *JWTService) GenerateAccessToken(userID string, email string, role user.Role) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.accessTokenExpirationTime).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"email":   email,
		"role":    string(role),
		"type":    TokenTypeAccess,
		"exp":     expiresAt,
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) GenerateRefreshToken(userID string) (token string, expiresAt int64, err error) {
	expiresAt = j.now().Add(j.refreshTokenExpirationTime).Unix()
	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"exp":     expiresAt,
		"type":    TokenTypeRefresh,
		// Two refresh tokens issued in the same second must still hash differently.
		"iat_ns": j.now().UnixNano(),
	})
	return tokenString, expiresAt, err
}

// ParseRefreshToken verifies signature, expiry and type of a refresh token.
func (j *JWTService) ParseRefreshToken(tokenString string) (string, error) {
	return j.userIDFromToken(tokenString, TokenTypeRefresh)
}

func (j *JWTService) RefreshTokenCookie(token string, expiresAt int64) *http.Cookie {
	return &http.Cookie{
		Name:     "refresh_token",
		Value:    token,
		Path:     "/api/v1/auth",
		Expires:  time.Unix(expiresAt, 0),
		HttpOnly: true,
		Secure:   j.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}

// RevokeToken denies an access token until it would have expired anyway.
func (j *JWTService) RevokeToken(token string, expiresAt int64) {
	j.mu.Lock()
	defer j.mu.Unlock()

	now := j.now().Unix()
	for t, exp := range j.revokedTokens {
		if exp <= now {
			delete(j.revokedTokens, t)
		}
	}
	j.revokedTokens[token] = expiresAt
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}

// GenerateSSEToken generates a short-lived token for EventSource
// connections, which cannot send an Authorization header.
func (j *JWTService) GenerateSSEToken(userID string) (token string, expiresIn int, err error) {
	expiresAt := j.now().Add(sseTokenTTL).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"user_id": userID,
		"type":    TokenTypeSSE,
		"exp":     expiresAt,
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, int(sseTokenTTL.Seconds()), nil
}

// ValidateSSEToken validates an SSE token and returns the user ID
func (j *JWTService) ValidateSSEToken(tokenString string) (string, error) {
	return j.userIDFromToken(tokenString, TokenTypeSSE)
}

func (j *JWTService) userIDFromToken(tokenString, wantType string) (string, error) {
	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil {
		return "", fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != wantType {
		return "", auth.ErrInvalidToken
	}

	userIDVal, ok := token.Get("user_id")
	if !ok {
		return "", auth.ErrMissingClaims
	}
	userID, ok := userIDVal.(string)
	if !ok || userID == "" {
		return "", auth.ErrMissingClaims
	}

	return userID, nil
}

// ClaimsFromContext reads the verified access token claims placed on the
// request context by jwtauth.Verifier.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, fmt.Errorf("failed to extract claims from context: %w", auth.ErrMissingClaims)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Claims{}, fmt.Errorf("user_id: %w", auth.ErrMissingClaims)
	}
	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return Claims{}, fmt.Errorf("role: %w", auth.ErrMissingClaims)
	}
	email, _ := claims["email"].(string)

	return Claims{UserID: userID, Email: email, Role: user.Role(role)}, nil
}

// NewContext returns ctx carrying an unsigned access token for c. It lets
// background jobs and tests call services that read claims from context.
func NewContext(ctx context.Context, c Claims) context.Context {
	token := jwt.New()
	_ = token.Set("user_id", c.UserID)
	_ = token.Set("email", c.Email)
	_ = token.Set("role", string(c.Role))
	_ = token.Set("type", TokenTypeAccess)
	return jwtauth.NewContext(ctx, token, nil)
}
