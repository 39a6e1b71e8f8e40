package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

// Handler turns published notifications back into deliveries on a local Notifier.
type Handler struct {
	out Notifier
}

// NewHandler creates a new notification handler
func NewHandler(out Notifier) *Handler {
	return &Handler{out: out}
}

// HandleEvent processes a message from Kafka
func (h *Handler) HandleEvent(ctx context.Context, key, value []byte) error {
	var n Notification
	if err := json.Unmarshal(value, &n); err != nil {
		log.Printf("[Notifier] Failed to unmarshal notification (key %s): %v", key, err)
		return fmt.Errorf("failed to unmarshal notification: %w", err)
	}

	if n.Message == "" {
		log.Printf("[Notifier] Skipping notification %s without message", n.ID)
		return nil
	}

	h.out.Notify(ctx, n)
	return nil
}
