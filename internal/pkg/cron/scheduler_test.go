package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler(time.Second)

	var ran atomic.Int32
	s.AddJob("ok", time.Hour, func(ctx context.Context) error {
		ran.Add(1)
		return nil
	})
	s.AddJob("fails", time.Hour, func(ctx context.Context) error {
		return errors.New("boom")
	})
	s.AddJob("panics", time.Hour, func(ctx context.Context) error {
		panic("bad job")
	})

	err := s.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fails: boom")
	assert.Equal(t, int32(1), ran.Load())
}

func TestScheduler_StartRunsImmediatelyAndStops(t *testing.T) {
	s := NewScheduler(0)

	done := make(chan struct{}, 1)
	s.AddJob("tick", time.Hour, func(ctx context.Context) error {
		select {
		case done <- struct{}{}:
		default:
		}
		return nil
	})
	s.Start()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}

	s.Stop()
}

func TestScheduler_TimeoutCancelsRun(t *testing.T) {
	s := NewScheduler(10 * time.Millisecond)
	s.AddJob("slow", time.Hour, func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	err := s.RunOnce(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
