// Package memory holds in-process implementations of the repository
// interfaces. Service tests run against it instead of PostgreSQL.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/attendance"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/geofence"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/intern"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/leave"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/schedule"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/user"
)

const dateLayout = "2006-01-02"

// Store is a shared in-memory database.
type Store struct {
	mu  sync.Mutex
	txm sync.Mutex
	now func() time.Time

	users      map[string]user.User
	interns    map[string]intern.Intern
	geofences  map[string]geofence.GeofenceLocation
	schedules  map[string]schedule.Schedule
	attendance map[string]attendance.Attendance
	leaves     map[string]leave.Leave
	tokens     map[string]refreshToken
}

type refreshToken struct {
	userID    string
	expiresAt time.Time
	revoked   bool
}

func NewStore() *Store {
	return &Store{
		now:        time.Now,
		users:      make(map[string]user.User),
		interns:    make(map[string]intern.Intern),
		geofences:  make(map[string]geofence.GeofenceLocation),
		schedules:  make(map[string]schedule.Schedule),
		attendance: make(map[string]attendance.Attendance),
		leaves:     make(map[string]leave.Leave),
		tokens:     make(map[string]refreshToken),
	}
}

type txKey struct{}

// WithinTransaction serializes fn against every other transaction on the
// store. It stands in for row locks; it does not roll back writes.
func (s *Store) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	s.txm.Lock()
	defer s.txm.Unlock()
	return fn(context.WithValue(ctx, txKey{}, true))
}

func newID() string {
	return uuid.NewString()
}

func sameDay(a, b time.Time) bool {
	return a.Format(dateLayout) == b.Format(dateLayout)
}

func paginate[T any](items []T, page, limit int) []T {
	if limit < 1 {
		limit = 20
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return nil
	}
	end := min(start+limit, len(items))
	return items[start:end]
}

// SetClock replaces the clock used for created_at and token expiry checks.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}
