package notification

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/notification"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/sse"
)

func TestNotify_DeliversToSubscriber(t *testing.T) {
	svc := NewNotificationService(sse.NewHub(4), Config{WorkerCount: 1, QueueSize: 4})
	defer svc.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events, cleanup := svc.Subscribe(ctx, "user-1")
	defer cleanup()

	require.NoError(t, svc.Notify(ctx, notification.Notification{
		RecipientID: "user-1",
		Type:        notification.TypeAttendanceApproved,
		Title:       "Attendance approved",
	}))

	select {
	case ev := <-events:
		assert.Equal(t, "notification", ev.Name)
		assert.Equal(t, notification.TypeAttendanceApproved, ev.Data.Type)
		assert.NotEmpty(t, ev.Data.ID)
		assert.False(t, ev.Data.CreatedAt.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("notification not delivered")
	}
}

func TestNotify_Validation(t *testing.T) {
	svc := NewNotificationService(sse.NewHub(1), Config{})

	err := svc.Notify(context.Background(), notification.Notification{})
	assert.ErrorIs(t, err, notification.ErrRecipientEmpty)

	svc.Stop()
	svc.Stop()
	err = svc.Notify(context.Background(), notification.Notification{RecipientID: "u"})
	assert.ErrorIs(t, err, notification.ErrServiceStopped)
}
