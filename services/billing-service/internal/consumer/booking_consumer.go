package consumer

import (
	"context"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Selma23042/hotel-management-systeme/pkg/events"
	"github.com/Selma23042/hotel-management-systeme/pkg/mq"
	"github.com/Selma23042/hotel-management-systeme/services/billing-service/internal/domain"
)

// BookingHandler is the slice of the invoice service the consumer needs.
type BookingHandler interface {
	CreateFromBooking(ctx context.Context, ev events.BookingEvent) (*domain.Invoice, error)
	HandleBookingConfirmed(ctx context.Context, ev events.BookingEvent) error
}

// BookingConsumer drains booking events off the queue with a bounded worker
// pool. Completed events that fail are rejected without requeue so a broken
// message cannot loop forever; the dead-letter exchange, when configured,
// picks them up.
type BookingConsumer struct {
	handler BookingHandler
	source  *mq.Consumer
	workers int
}

func NewBookingConsumer(handler BookingHandler, source *mq.Consumer, workers int) *BookingConsumer {
	if workers <= 0 {
		workers = 5
	}
	return &BookingConsumer{handler: handler, source: source, workers: workers}
}

// Run blocks until the context is cancelled or the delivery channel closes.
func (c *BookingConsumer) Run(ctx context.Context) error {
	msgs, err := c.source.Deliveries(ctx)
	if err != nil {
		return err
	}
	var wg sync.WaitGroup
	for i := 0; i < c.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for d := range msgs {
				c.Handle(ctx, d)
			}
		}()
	}
	wg.Wait()
	return nil
}

// Handle dispatches a single delivery by routing key and settles it.
func (c *BookingConsumer) Handle(ctx context.Context, d amqp.Delivery) {
	switch d.RoutingKey {
	case events.RKBookingCompleted:
		ev, err := events.MustUnmarshal[events.BookingEvent](d.Body)
		if err != nil {
			log.Printf("[billing] dropping malformed completed event: %v", err)
			_ = d.Nack(false, false)
			return
		}
		inv, err := c.handler.CreateFromBooking(ctx, ev)
		if err != nil {
			log.Printf("[billing] invoice for booking %s not created: %v", ev.BookingID, err)
			_ = d.Nack(false, false)
			return
		}
		log.Printf("[billing] invoice %s created for booking %s, total %.2f", inv.InvoiceNumber, inv.BookingID, inv.TotalAmount)
		_ = d.Ack(false)
	case events.RKBookingConfirmed:
		ev, err := events.MustUnmarshal[events.BookingEvent](d.Body)
		if err != nil {
			log.Printf("[billing] dropping malformed confirmed event: %v", err)
			_ = d.Ack(false)
			return
		}
		if err := c.handler.HandleBookingConfirmed(ctx, ev); err != nil {
			// Confirmations carry no billing obligation yet; log and move on.
			log.Printf("[billing] confirmed handler failed for booking %s: %v", ev.BookingID, err)
		}
		_ = d.Ack(false)
	default:
		log.Printf("[billing] ignoring message with routing key %q", d.RoutingKey)
		_ = d.Ack(false)
	}
}
