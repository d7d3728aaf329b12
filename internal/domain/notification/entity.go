package notification

import (
	"time"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeAttendanceApproved   NotificationType = "attendance_approved"
	TypeAttendanceRejected   NotificationType = "attendance_rejected"
	TypeAttendanceUpdated    NotificationType = "attendance_updated"
	TypeAttendanceAutoClosed NotificationType = "attendance_auto_closed"
	TypeLeaveApproved        NotificationType = "leave_approved"
	TypeLeaveRejected        NotificationType = "leave_rejected"
)

// Notification is a realtime message to one user. It is not persisted.
type Notification struct {
	ID          string                 `json:"id"`
	RecipientID string                 `json:"-"`
	Type        NotificationType       `json:"type"`
	Title       string                 `json:"title"`
	Message     string                 `json:"message"`
	Data        map[string]interface{} `json:"data,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

// Event is what a subscriber receives on its stream.
type Event struct {
	Name string
	Data Notification
}

// SSETokenResponse carries the short-lived token for EventSource connections.
type SSETokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}
