package notification

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a user-facing notification.
type Kind string

const (
	KindOutOfStock   Kind = "out_of_stock"
	KindAddFailed    Kind = "add_failed"
	KindRemoveFailed Kind = "remove_failed"
	KindUpdateFailed Kind = "update_failed"
)

// Notification is a human-readable message surfaced to the shopper.
// It never carries the underlying error.
type Notification struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	ProductID int       `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

// New creates a notification with a fresh ID.
func New(kind Kind, message string, productID int) Notification {
	return Notification{
		ID:        uuid.New().String(),
		Kind:      kind,
		Message:   message,
		ProductID: productID,
		CreatedAt: time.Now(),
	}
}

// Notifier delivers notifications. Delivery is fire-and-forget: implementations
// log their own failures instead of returning them.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Multi fans a notification out to every notifier in order.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n Notification) {
	for _, notifier := range m {
		notifier.Notify(ctx, n)
	}
}

// LogNotifier writes notifications to the process log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, n Notification) {
	log.Printf("[Notifier] %s: %s (product %d)", n.Kind, n.Message, n.ProductID)
}
