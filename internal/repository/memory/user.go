package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/auth"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/user"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/repository/postgresql"
)

type userRepository struct{ s *Store }

func (s *Store) Users() user.UserRepository { return userRepository{s} }

func (r userRepository) withIntern(u user.User) user.User {
	for _, in := range r.s.interns {
		if in.UserID == u.ID {
			id := in.ID
			u.InternID = &id
		}
	}
	return u
}

func (r userRepository) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return r.withIntern(u), nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r userRepository) GetByID(_ context.Context, id string) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return r.withIntern(u), nil
}

func (r userRepository) Create(_ context.Context, newUser user.User) (user.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, newUser.Email) {
			return user.User{}, user.ErrUserEmailExists
		}
	}
	newUser.ID = newID()
	newUser.Email = strings.ToLower(newUser.Email)
	newUser.CreatedAt = r.s.now()
	newUser.UpdatedAt = newUser.CreatedAt
	r.s.users[newUser.ID] = newUser
	return newUser, nil
}

func (r userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r userRepository) ExistsByRole(_ context.Context, role user.Role) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Role == role {
			return true, nil
		}
	}
	return false, nil
}

func (r userRepository) ListEmailsByRole(_ context.Context, roles ...user.Role) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var emails []string
	for _, u := range r.s.users {
		if !u.IsActive {
			continue
		}
		for _, role := range roles {
			if u.Role == role {
				emails = append(emails, u.Email)
			}
		}
	}
	sort.Strings(emails)
	return emails, nil
}

type refreshTokenRepository struct{ s *Store }

func (s *Store) RefreshTokens() postgresql.JWTRepository { return refreshTokenRepository{s} }

func (r refreshTokenRepository) CreateRefreshToken(_ context.Context, userID string, token string, expiresAt int64, _ auth.SessionTrackingRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.tokens[token] = refreshToken{userID: userID, expiresAt: time.Unix(expiresAt, 0)}
	return nil
}

func (r refreshTokenRepository) IsRefreshTokenRevoked(_ context.Context, token string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tokens[token]
	if !ok {
		return true, nil
	}
	return t.revoked || !t.expiresAt.After(r.s.now()), nil
}

func (r refreshTokenRepository) RevokeRefreshToken(_ context.Context, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.tokens[token]; ok {
		t.revoked = true
		r.s.tokens[token] = t
	}
	return nil
}

func (r refreshTokenRepository) RevokeAllForUser(_ context.Context, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for k, t := range r.s.tokens {
		if t.userID == userID {
			t.revoked = true
			r.s.tokens[k] = t
		}
	}
	return nil
}

func (r refreshTokenRepository) DeleteExpired(_ context.Context, cutoff time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for k, t := range r.s.tokens {
		if t.expiresAt.Before(cutoff) {
			delete(r.s.tokens, k)
			n++
		}
	}
	return n, nil
}
