package notification

import "errors"

var (
	ErrQueueFull      = errors.New("notification queue is full")
	ErrServiceStopped = errors.New("notification service is stopped")
	ErrRecipientEmpty = errors.New("notification recipient is required")
)
