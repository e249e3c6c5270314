package notifier

import (
	"context"
	"sync"

	"github.com/julianstephens/weekly/internal/constants"
	"github.com/julianstephens/weekly/internal/models"
)

// Inbox is the in-application fallback. Delivered notifications are queued
// on a bounded channel for the UI and kept in a short history.
type Inbox struct {
	mu      sync.Mutex
	ch      chan models.Notification
	history []models.Notification
	limit   int
}

func NewInbox(capacity int) *Inbox {
	if capacity <= 0 {
		capacity = constants.InboxCapacity
	}
	return &Inbox{
		ch:    make(chan models.Notification, capacity),
		limit: capacity,
	}
}

// Deliver never blocks. When the channel is full the oldest queued
// notification is dropped.
func (i *Inbox) Deliver(ctx context.Context, n models.Notification) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.history = append(i.history, n)
	if len(i.history) > i.limit {
		i.history = i.history[len(i.history)-i.limit:]
	}

	for {
		select {
		case i.ch <- n:
			return nil
		default:
		}
		select {
		case <-i.ch:
		default:
		}
	}
}

// C is read by the UI to show banners.
func (i *Inbox) C() <-chan models.Notification {
	return i.ch
}

// History returns delivered notifications, oldest first.
func (i *Inbox) History() []models.Notification {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := make([]models.Notification, len(i.history))
	copy(out, i.history)
	return out
}
