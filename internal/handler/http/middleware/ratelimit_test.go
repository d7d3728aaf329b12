package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/user"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func newTestLimiter(perMinute int) (*UserRateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)}
	l := NewUserRateLimiter(perMinute)
	l.now = clock.Now
	l.lastSweep = clock.t
	return l, clock
}

func serveAs(t *testing.T, h http.Handler, userID string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/attendance/clock-in", nil)
	req = req.WithContext(jwt.NewContext(req.Context(), jwt.Claims{UserID: userID, Role: user.RoleIntern}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec.Code
}

func TestUserRateLimiter_RejectsOverBudget(t *testing.T) {
	l, _ := newTestLimiter(2)
	h := l.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	assert.Equal(t, http.StatusOK, serveAs(t, h, "u1"))
	assert.Equal(t, http.StatusOK, serveAs(t, h, "u1"))
	assert.Equal(t, http.StatusTooManyRequests, serveAs(t, h, "u1"))
	assert.Equal(t, http.StatusOK, serveAs(t, h, "u2"), "budgets are per user")
}

func TestUserRateLimiter_EvictsIdleBuckets(t *testing.T) {
	l, clock := newTestLimiter(5)
	h := l.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for _, id := range []string{"a", "b", "c", "d"} {
		require.Equal(t, http.StatusOK, serveAs(t, h, id))
	}
	require.Equal(t, 4, l.Len())

	clock.t = clock.t.Add(3 * time.Minute)
	require.Equal(t, http.StatusOK, serveAs(t, h, "a"))
	assert.Equal(t, 4, l.Len(), "nothing is idle long enough yet")

	clock.t = clock.t.Add(idleTTL - time.Minute)
	require.Equal(t, http.StatusOK, serveAs(t, h, "e"))
	assert.Equal(t, 2, l.Len(), "b, c and d were dropped; a and e remain")
}
