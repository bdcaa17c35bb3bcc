package publisher

import (
	"context"
	"fmt"

	"github.com/Selma23042/hotel-management-systeme/pkg/events"
	"github.com/Selma23042/hotel-management-systeme/pkg/mq"
)

// EventPublisher pushes booking lifecycle events onto the topic exchange.
// There is no outbox: a broker outage at publish time loses the event, and
// the state transition that triggered it stays durable.
type EventPublisher struct {
	pub *mq.Publisher
}

func NewEventPublisher(pub *mq.Publisher) *EventPublisher {
	return &EventPublisher{pub: pub}
}

func (p *EventPublisher) PublishBookingConfirmed(ctx context.Context, ev events.BookingEvent) error {
	if err := p.pub.PublishJSON(ctx, events.RKBookingConfirmed, ev); err != nil {
		return fmt.Errorf("publish %s: %w", events.RKBookingConfirmed, err)
	}
	return nil
}

func (p *EventPublisher) PublishBookingCompleted(ctx context.Context, ev events.BookingEvent) error {
	if err := p.pub.PublishJSON(ctx, events.RKBookingCompleted, ev); err != nil {
		return fmt.Errorf("publish %s: %w", events.RKBookingCompleted, err)
	}
	return nil
}
