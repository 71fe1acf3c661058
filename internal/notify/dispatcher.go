package notify

import (
	"context"
	"time"

	"snapbid/internal/repository"
	"snapbid/utils"

	model "snapbid/internal/models"
)

// Event is an outbound notification produced by a core operation. Core
// operations return events instead of writing notifications themselves,
// so their correctness never depends on notification delivery.
type Event struct {
	Title     string
	Message   string
	Recipient string
}

// Dispatcher delivers events to the notification store best-effort.
// Delivery failures are logged and swallowed, never propagated.
type Dispatcher struct {
	store repository.NotificationStore
}

// NewDispatcher creates a new Dispatcher instance
func NewDispatcher(store repository.NotificationStore) *Dispatcher {
	return &Dispatcher{store: store}
}

// Dispatch writes each event as a notification record. It never returns
// an error.
func (d *Dispatcher) Dispatch(ctx context.Context, events ...Event) {
	for _, event := range events {
		notification := model.Notification{
			NotificationID: utils.GenerateID(),
			UserID:         event.Recipient,
			Title:          event.Title,
			Message:        event.Message,
			CreatedAt:      time.Now().UTC(),
		}
		if err := d.store.CreateNotification(ctx, notification); err != nil {
			utils.Error("failed to deliver notification", map[string]any{
				"recipient": event.Recipient,
				"title":     event.Title,
				"error":     err.Error(),
			})
		}
	}
}
