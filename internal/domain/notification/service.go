package notification

import (
	"context"
)

// Service delivers notifications to connected users
type Service interface {
	// Notify queues n for asynchronous delivery
	Notify(ctx context.Context, n Notification) error

	// Subscribe streams the user's notifications until cleanup is called or ctx ends
	Subscribe(ctx context.Context, userID string) (<-chan Event, func())

	// Stop drains the queue and stops the workers
	Stop()
}
