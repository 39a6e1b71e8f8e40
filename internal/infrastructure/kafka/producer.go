package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/example/cart-store/internal/notification"
	"github.com/segmentio/kafka-go"
)

// Producer publishes cart notifications, one message per notification,
// keyed by product so a product's messages stay on one partition.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	return &Producer{writer: writer}
}

func (p *Producer) Publish(ctx context.Context, n notification.Notification) error {
	msg, err := newMessage(n)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish notification %s: %w", n.ID, err)
	}
	return nil
}

func newMessage(n notification.Notification) (kafka.Message, error) {
	data, err := json.Marshal(n)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal notification %s: %w", n.ID, err)
	}

	return kafka.Message{
		Key:   []byte(strconv.Itoa(n.ProductID)),
		Value: data,
		Time:  n.CreatedAt,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
			{Key: "notification-kind", Value: []byte(n.Kind)},
		},
	}, nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
