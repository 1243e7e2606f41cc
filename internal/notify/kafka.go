// Package notify publishes reservation lifecycle events to Kafka.
// Events are informational fan-out for downstream consumers (mailers,
// analytics); the booking transaction never depends on them. When no brokers
// are configured the service is wired with Noop instead.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/mnapio/tripbook/backend/internal/domain"
)

// ReservationConfirmedEvent is the JSON payload published after a booking
// commits. Consumers must tolerate unknown fields.
type ReservationConfirmedEvent struct {
	EventID          uuid.UUID `json:"event_id"`
	TripID           int64     `json:"trip_id"`
	TripName         string    `json:"trip_name"`
	ReservationID    int64     `json:"reservation_id"`
	ConfirmationCode uuid.UUID `json:"confirmation_code"`
	Email            string    `json:"email"`
	SlotsTaken       int       `json:"slots_taken"`
	SlotsLeft        int       `json:"slots_left"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// KafkaPublisher writes reservation events to a single Kafka topic.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher constructs a publisher for the given brokers and topic.
// Messages are keyed by trip id so all events for one trip stay ordered on
// the same partition.
func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("notify.NewKafkaPublisher: at least one broker is required")
	}
	if topic == "" {
		return nil, fmt.Errorf("notify.NewKafkaPublisher: topic is required")
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{}, // hash by key keeps per-trip ordering
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}

	return &KafkaPublisher{writer: writer}, nil
}

// ReservationConfirmed publishes a reservation.confirmed event.
// Called after the booking transaction has committed; the caller treats any
// error as non-fatal.
func (p *KafkaPublisher) ReservationConfirmed(ctx context.Context, res domain.Reservation, trip domain.Trip) error {
	event := ReservationConfirmedEvent{
		EventID:          uuid.New(),
		TripID:           trip.ID,
		TripName:         trip.Name,
		ReservationID:    res.ID,
		ConfirmationCode: res.ConfirmationCode,
		Email:            res.Email,
		SlotsTaken:       res.SlotsTaken,
		SlotsLeft:        trip.SlotsAvailable,
		OccurredAt:       time.Now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("notify.KafkaPublisher.ReservationConfirmed: marshal: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(trip.ID, 10)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event-id", Value: []byte(event.EventID.String())},
			{Key: "event-type", Value: []byte("reservation.confirmed")},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("notify.KafkaPublisher.ReservationConfirmed: write: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// Noop is a ReservationNotifier that does nothing. Used when no Kafka brokers
// are configured and in tests.
type Noop struct{}

// ReservationConfirmed discards the event.
func (Noop) ReservationConfirmed(context.Context, domain.Reservation, domain.Trip) error {
	return nil
}
