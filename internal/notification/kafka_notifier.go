package notification

import (
	"context"
	"log"
)

// Publisher is satisfied by *kafka.Producer.
type Publisher interface {
	Publish(ctx context.Context, n Notification) error
}

// KafkaNotifier publishes notifications so a separate process can surface them.
type KafkaNotifier struct {
	publisher Publisher
}

func NewKafkaNotifier(p Publisher) *KafkaNotifier {
	return &KafkaNotifier{publisher: p}
}

func (k *KafkaNotifier) Notify(ctx context.Context, n Notification) {
	if err := k.publisher.Publish(ctx, n); err != nil {
		log.Printf("[Notifier] %v", err)
	}
}
