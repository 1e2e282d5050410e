package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// Booking lifecycle event types.
const (
	TypeBookingCreated  = "booking.created"
	TypeBookingApproved = "booking.approved"
	TypeBookingRejected = "booking.rejected"
)

// BookingEvent is the message published to Kafka on every booking
// lifecycle transition.
type BookingEvent struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	BookingID int64     `json:"bookingId"`
	ItemID    int64     `json:"itemId"`
	BookerID  int64     `json:"bookerId"`
	Status    string    `json:"status"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

// Producer writes booking events to a single Kafka topic.
type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// Publish serializes the payload as JSON and writes it keyed by key, so
// events for the same booking land in the same partition.
func (p *Producer) Publish(ctx context.Context, key string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("failed to write event message: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
