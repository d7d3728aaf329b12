package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func TestLeave_DaysAndCovers(t *testing.T) {
	single := Leave{StartDate: date("2025-03-03")}
	assert.Equal(t, 1, single.Days())
	assert.True(t, single.Covers(date("2025-03-03")))
	assert.False(t, single.Covers(date("2025-03-04")))

	end := date("2025-03-05")
	multi := Leave{StartDate: date("2025-03-03"), EndDate: &end}
	assert.Equal(t, 3, multi.Days())
	assert.True(t, multi.Covers(date("2025-03-05")))
	assert.False(t, multi.Covers(date("2025-03-02")))
}

func TestLeave_ProcessOnlyPending(t *testing.T) {
	now := time.Now()
	comments := "enjoy"

	l := Leave{Status: StatusPending}
	require.NoError(t, l.Approve("admin-1", now, &comments))
	assert.Equal(t, StatusApproved, l.Status)
	assert.Equal(t, "enjoy", *l.Notes)
	assert.ErrorIs(t, l.Reject("admin-1", now, "no", nil), ErrLeaveAlreadyProcessed)

	r := Leave{Status: StatusPending}
	require.NoError(t, r.Reject("admin-1", now, "exam week", nil))
	assert.Equal(t, "exam week", *r.RejectionReason)
	assert.ErrorIs(t, r.Approve("admin-1", now, nil), ErrLeaveAlreadyProcessed)
}
