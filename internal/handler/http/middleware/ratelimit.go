package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/handler/http/response"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/jwt"
	"golang.org/x/time/rate"
)

// idleTTL is how long an unused bucket is kept. A bucket refills within a
// minute, so dropping it after that is the same as keeping a full one.
const idleTTL = 5 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// UserRateLimiter keeps one token bucket per authenticated user.
type UserRateLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	r         rate.Limit
	b         int
	lastSweep time.Time
	now       func() time.Time
}

// NewUserRateLimiter allows perMinute requests per user, with bursts of the same size.
func NewUserRateLimiter(perMinute int) *UserRateLimiter {
	if perMinute <= 0 {
		perMinute = 1
	}
	return &UserRateLimiter{
		visitors:  make(map[string]*visitor),
		r:         rate.Every(time.Minute / time.Duration(perMinute)),
		b:         perMinute,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (l *UserRateLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastSweep) >= idleTTL {
		l.sweep(now)
	}

	v, exists := l.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(l.r, l.b)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter
}

// sweep drops buckets idle for longer than idleTTL. Callers hold l.mu.
func (l *UserRateLimiter) sweep(now time.Time) {
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) >= idleTTL {
			delete(l.visitors, key)
		}
	}
	l.lastSweep = now
}

// Len reports how many buckets are tracked.
func (l *UserRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.visitors)
}

// Limit rejects requests over the user's budget with 429. Requests without
// claims are keyed by remote address.
func (l *UserRateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.RemoteAddr
		if claims, err := jwt.ClaimsFromContext(r.Context()); err == nil {
			key = claims.UserID
		}

		if !l.limiter(key).Allow() {
			w.Header().Set("Retry-After", "60")
			response.TooManyRequests(w, "Too many requests, please slow down")
			return
		}

		next.ServeHTTP(w, r)
	})
}
