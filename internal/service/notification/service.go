package notification

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/domain/notification"
	"github.com/ojt-track/ojt-attendance-backend-go/internal/pkg/sse"
)

const eventName = "notification"

// Config holds notification service configuration
type Config struct {
	WorkerCount int // default: 2
	QueueSize   int // default: 1000
}

type service struct {
	hub    *sse.Hub
	config Config
	now    func() time.Time

	queue   chan notification.Notification
	wg      sync.WaitGroup
	mu      sync.RWMutex
	stopped bool
	stopCh  chan struct{}
}

// NewNotificationService creates a new notification service with background workers
func NewNotificationService(hub *sse.Hub, cfg Config) notification.Service {
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}

	s := &service{
		hub:    hub,
		config: cfg,
		now:    time.Now,
		queue:  make(chan notification.Notification, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("Notification service started", "workers", cfg.WorkerCount, "queue_size", cfg.QueueSize)

	return s
}

func (s *service) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case n := <-s.queue:
			s.deliver(n)
		case <-s.stopCh:
			// drain what is already queued
			for {
				select {
				case n := <-s.queue:
					s.deliver(n)
				default:
					slog.Debug("Notification worker stopped", "worker", id)
					return
				}
			}
		}
	}
}

func (s *service) deliver(n notification.Notification) {
	s.hub.Publish(n.RecipientID, sse.Event{
		UserID: n.RecipientID,
		Event:  eventName,
		Data:   n,
	})
}

// Notify implements notification.Service.
func (s *service) Notify(ctx context.Context, n notification.Notification) error {
	if n.RecipientID == "" {
		return notification.ErrRecipientEmpty
	}
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.stopped {
		return notification.ErrServiceStopped
	}

	select {
	case s.queue <- n:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		// Queue full, deliver inline
		slog.Warn("Notification queue full, delivering inline", "type", n.Type)
		s.deliver(n)
		return nil
	}
}

// Subscribe implements notification.Service.
func (s *service) Subscribe(ctx context.Context, userID string) (<-chan notification.Event, func()) {
	ch, cleanup := s.hub.Subscribe(userID)

	out := make(chan notification.Event, 10)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				n, ok := event.Data.(notification.Notification)
				if !ok {
					continue
				}
				select {
				case out <- notification.Event{Name: event.Event, Data: n}:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup
}

// Stop implements notification.Service.
func (s *service) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
	slog.Info("Notification service stopped")
}
