// Package events publishes domain events to Kafka. Publishing is best
// effort: callers log failures and continue, orders are never rolled back
// because the broker was down.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// OrderItemEvent mirrors one order line in the event payload.
type OrderItemEvent struct {
	ProductID string `json:"product_id"`
	Count     int    `json:"count"`
}

// OrderCreatedEvent is emitted after an order is persisted.
type OrderCreatedEvent struct {
	EventID   string           `json:"event_id"`
	OrderID   string           `json:"order_id"`
	UserID    string           `json:"user_id"`
	Items     []OrderItemEvent `json:"items"`
	CreatedAt time.Time        `json:"created_at"`
}

// Producer writes order events to a Kafka topic. A nil Producer is a no-op,
// so wiring without brokers configured is safe.
type Producer struct {
	writer *kafka.Writer
}

// NewProducer builds a Producer; returns nil when no brokers are configured.
func NewProducer(brokers []string, topic string) *Producer {
	if len(brokers) == 0 || topic == "" {
		return nil
	}
	w := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  brokers,
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	})
	return &Producer{writer: w}
}

// PublishOrderCreated emits one event keyed by order ID.
func (p *Producer) PublishOrderCreated(ctx context.Context, ev OrderCreatedEvent) error {
	if p == nil || p.writer == nil {
		return nil
	}
	if ev.EventID == "" {
		ev.EventID = uuid.NewString()
	}
	value, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	msg := kafka.Message{Key: []byte(ev.OrderID), Value: value, Time: time.Now()}
	return p.writer.WriteMessages(ctx, msg)
}

// Close flushes and closes the underlying writer.
func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
