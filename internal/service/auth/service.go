package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/auth"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/user"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/database"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/jwt"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	tx database.Transactor
	user.UserRepository
	jwt.Service
	postgresql.JWTRepository
}

func NewAuthService(tx database.Transactor, userRepository user.UserRepository, jwtService jwt.Service, jwtRepository postgresql.JWTRepository) auth.AuthService {
	return &AuthServiceImpl{
		tx:             tx,
		UserRepository: userRepository,
		Service:        jwtService,
		JWTRepository:  jwtRepository,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register implements auth.AuthService. New accounts are interns.
func (a *AuthServiceImpl) Register(ctx context.Context, registerReq auth.RegisterRequest, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	exists, err := a.UserRepository.ExistsByEmail(ctx, registerReq.Email)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return auth.TokenResponse{}, user.ErrUserEmailExists
	}

	hashedPassword, err := a.hashPassword(registerReq.Password)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var tokenResponse auth.TokenResponse
	err = a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		newUser, err := a.UserRepository.Create(txCtx, user.User{
			Name:         registerReq.Name,
			Email:        registerReq.Email,
			PasswordHash: hashedPassword,
			Role:         user.RoleIntern,
			IsActive:     true,
		})
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		tokenResponse, err = a.issueTokens(txCtx, newUser, sessionTrackReq)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, loginReq auth.LoginRequest, sessionTrackReq auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	userData, err := a.UserRepository.GetByEmail(ctx, loginReq.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(loginReq.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if !userData.IsActive {
		return auth.TokenResponse{}, auth.ErrAccountInactive
	}

	var tokenResponse auth.TokenResponse
	err = a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		tokenResponse, err = a.issueTokens(txCtx, userData, sessionTrackReq)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, u user.User, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	var (
		resp auth.TokenResponse
		err  error
	)

	resp.AccessToken, resp.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(u.ID, u.Email, u.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	resp.RefreshToken, resp.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	if err := a.CreateRefreshToken(ctx, u.ID, resp.RefreshToken, resp.RefreshTokenExpiresIn, session); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to save refresh token to database: %w", err)
	}
	return resp, nil
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	// 1. Verify signature, expiry and token type
	userID, err := a.Service.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	// 2. Check DB for revocation/expiry (pass raw token, not hash)
	isRevoked, err := a.JWTRepository.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to check refresh token: %w", err)
	}
	if isRevoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	// 3. Get user
	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.AccessTokenResponse{}, auth.ErrUserNotFound
		}
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to get user: %w", err)
	}
	if !userData.IsActive {
		return auth.AccessTokenResponse{}, auth.ErrAccountInactive
	}

	// 4. Generate new access token
	var resp auth.AccessTokenResponse
	resp.AccessToken, resp.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.Role)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return resp, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	return a.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		isRevoked, err := a.JWTRepository.IsRefreshTokenRevoked(txCtx, token)
		if err != nil {
			return fmt.Errorf("failed to check if refresh token is revoked: %w", err)
		}
		if !isRevoked {
			if err := a.JWTRepository.RevokeRefreshToken(txCtx, token); err != nil {
				return fmt.Errorf("failed to revoke refresh token: %w", err)
			}
		}
		return nil
	})
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context) (auth.MeResponse, error) {
	claims, err := jwt.ClaimsFromContext(ctx)
	if err != nil {
		return auth.MeResponse{}, err
	}

	userData, err := a.UserRepository.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.MeResponse{}, auth.ErrUserNotFound
		}
		return auth.MeResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	return auth.MeResponse{
		ID:        userData.ID,
		Name:      userData.Name,
		Email:     userData.Email,
		Role:      string(userData.Role),
		InternID:  userData.InternID,
		CreatedAt: userData.CreatedAt,
	}, nil
}

// EnsureAdmin implements auth.AuthService.
func (a *AuthServiceImpl) EnsureAdmin(ctx context.Context, name, email, password string) error {
	exists, err := a.UserRepository.ExistsByRole(ctx, user.RoleAdmin)
	if err != nil {
		return fmt.Errorf("failed to check for admin: %w", err)
	}
	if exists {
		return nil
	}

	emailTaken, err := a.UserRepository.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if emailTaken {
		return fmt.Errorf("bootstrap admin %s: %w", email, user.ErrUserEmailExists)
	}

	hashedPassword, err := a.hashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin, err := a.UserRepository.Create(ctx, user.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         user.RoleAdmin,
		IsActive:     true,
	})
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	slog.Info("Bootstrap administrator created", "user_id", admin.ID, "email", admin.Email)
	return nil
}
