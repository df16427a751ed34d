// Package events announces reservation lifecycle changes to other systems.
package events

import (
	"context"
	"innkeep/pkg/kafka"
	"innkeep/pkg/model"
	"innkeep/pkg/requestid"
	"time"
)

const (
	TypeOpened   = "reservation.opened"
	TypeCanceled = "reservation.canceled"

	SchemaVersion = "1"
)

type ReservationEvent struct {
	Type          string                  `json:"type"`
	ReservationID string                  `json:"reservation_id"`
	CustomerID    string                  `json:"customer_id"`
	RoomID        string                  `json:"room_id"`
	RoomNumber    string                  `json:"room_number"`
	Checkin       string                  `json:"checkin"`
	Checkout      string                  `json:"checkout"`
	Status        model.ReservationStatus `json:"status"`
	OccurredAt    time.Time               `json:"occurred_at"`
}

type Publisher interface {
	Opened(ctx context.Context, r *model.Reservation) error
	Canceled(ctx context.Context, r *model.Reservation) error
}

// MessagePublisher is satisfied by *kafka.Producer.
type MessagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type kafkaPublisher struct {
	producer MessagePublisher
	source   string
	now      func() time.Time
}

func NewKafkaPublisher(producer MessagePublisher, source string) Publisher {
	return &kafkaPublisher{
		producer: producer,
		source:   source,
		now:      time.Now,
	}
}

func (p *kafkaPublisher) Opened(ctx context.Context, r *model.Reservation) error {
	return p.publish(ctx, TypeOpened, r)
}

func (p *kafkaPublisher) Canceled(ctx context.Context, r *model.Reservation) error {
	return p.publish(ctx, TypeCanceled, r)
}

func (p *kafkaPublisher) publish(ctx context.Context, eventType string, r *model.Reservation) error {
	event := newEvent(eventType, r, p.now().UTC())

	msg := kafka.NewMessage().
		WithKey(r.ID).
		WithEventType(eventType).
		WithSchemaVersion(SchemaVersion).
		WithSource(p.source).
		WithCorrelationID(requestid.From(ctx)).
		WithTimestamp(event.OccurredAt).
		WithValue(event).
		Build()

	return p.producer.Publish(ctx, msg)
}

func newEvent(eventType string, r *model.Reservation, at time.Time) ReservationEvent {
	event := ReservationEvent{
		Type:          eventType,
		ReservationID: r.ID,
		CustomerID:    r.CustomerID,
		RoomID:        r.RoomID,
		RoomNumber:    r.RoomNumber,
		Status:        r.Status,
		OccurredAt:    at,
	}
	if r.Checkin != nil {
		event.Checkin = r.Checkin.String()
	}
	if r.Checkout != nil {
		event.Checkout = r.Checkout.String()
	}
	return event
}

type noopPublisher struct{}

// NewNoopPublisher is used when Kafka is disabled.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Opened(context.Context, *model.Reservation) error   { return nil }
func (noopPublisher) Canceled(context.Context, *model.Reservation) error { return nil }
