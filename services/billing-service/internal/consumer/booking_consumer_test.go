package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Selma23042/hotel-management-systeme/pkg/events"
	"github.com/Selma23042/hotel-management-systeme/services/billing-service/internal/domain"
)

type fakeAcker struct {
	acked    bool
	nacked   bool
	requeued bool
}

func (f *fakeAcker) Ack(tag uint64, multiple bool) error {
	f.acked = true
	return nil
}

func (f *fakeAcker) Nack(tag uint64, multiple, requeue bool) error {
	f.nacked = true
	f.requeued = requeue
	return nil
}

func (f *fakeAcker) Reject(tag uint64, requeue bool) error {
	f.nacked = true
	f.requeued = requeue
	return nil
}

type fakeHandler struct {
	createErr    error
	confirmedErr error
	created      []events.BookingEvent
	confirmed    []events.BookingEvent
}

func (f *fakeHandler) CreateFromBooking(ctx context.Context, ev events.BookingEvent) (*domain.Invoice, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, ev)
	return &domain.Invoice{InvoiceNumber: "INV-1", BookingID: ev.BookingID}, nil
}

func (f *fakeHandler) HandleBookingConfirmed(ctx context.Context, ev events.BookingEvent) error {
	if f.confirmedErr != nil {
		return f.confirmedErr
	}
	f.confirmed = append(f.confirmed, ev)
	return nil
}

func delivery(t *testing.T, rk string, ev events.BookingEvent) (amqp.Delivery, *fakeAcker) {
	t.Helper()
	body, err := json.Marshal(ev)
	require.NoError(t, err)
	acker := &fakeAcker{}
	return amqp.Delivery{Acknowledger: acker, RoutingKey: rk, Body: body}, acker
}

func testEvent() events.BookingEvent {
	return events.BookingEvent{
		BookingID:    "booking-1",
		CustomerID:   "cust-1",
		RoomID:       "room-1",
		CheckInDate:  "2026-03-15",
		CheckOutDate: "2026-03-17",
		TotalPrice:   200.0,
	}
}

func TestCompletedEventCreatesInvoice(t *testing.T) {
	h := &fakeHandler{}
	c := NewBookingConsumer(h, nil, 1)

	d, acker := delivery(t, events.RKBookingCompleted, testEvent())
	c.Handle(context.Background(), d)

	require.Len(t, h.created, 1)
	assert.Equal(t, "booking-1", h.created[0].BookingID)
	assert.True(t, acker.acked)
	assert.False(t, acker.nacked)
}

func TestCompletedEventFailureRejectedWithoutRequeue(t *testing.T) {
	h := &fakeHandler{createErr: errors.New("db down")}
	c := NewBookingConsumer(h, nil, 1)

	d, acker := delivery(t, events.RKBookingCompleted, testEvent())
	c.Handle(context.Background(), d)

	assert.False(t, acker.acked)
	assert.True(t, acker.nacked)
	assert.False(t, acker.requeued)
}

func TestDuplicateCompletedEventNotRequeued(t *testing.T) {
	h := &fakeHandler{createErr: errors.New("invalid invoice: invoice already exists for booking booking-1")}
	c := NewBookingConsumer(h, nil, 1)

	d, acker := delivery(t, events.RKBookingCompleted, testEvent())
	c.Handle(context.Background(), d)

	// redelivered duplicates must not loop back onto the queue
	assert.True(t, acker.nacked)
	assert.False(t, acker.requeued)
}

func TestMalformedCompletedEventRejected(t *testing.T) {
	h := &fakeHandler{}
	c := NewBookingConsumer(h, nil, 1)

	acker := &fakeAcker{}
	d := amqp.Delivery{Acknowledger: acker, RoutingKey: events.RKBookingCompleted, Body: []byte("{")}
	c.Handle(context.Background(), d)

	assert.Empty(t, h.created)
	assert.True(t, acker.nacked)
	assert.False(t, acker.requeued)
}

func TestConfirmedEventAcked(t *testing.T) {
	h := &fakeHandler{}
	c := NewBookingConsumer(h, nil, 1)

	d, acker := delivery(t, events.RKBookingConfirmed, testEvent())
	c.Handle(context.Background(), d)

	require.Len(t, h.confirmed, 1)
	assert.True(t, acker.acked)
}

func TestConfirmedEventFailureAbsorbed(t *testing.T) {
	h := &fakeHandler{confirmedErr: errors.New("transient")}
	c := NewBookingConsumer(h, nil, 1)

	d, acker := delivery(t, events.RKBookingConfirmed, testEvent())
	c.Handle(context.Background(), d)

	assert.True(t, acker.acked)
	assert.False(t, acker.nacked)
}

func TestUnknownRoutingKeyAcked(t *testing.T) {
	h := &fakeHandler{}
	c := NewBookingConsumer(h, nil, 1)

	d, acker := delivery(t, "booking.cancelled", testEvent())
	c.Handle(context.Background(), d)

	assert.Empty(t, h.created)
	assert.Empty(t, h.confirmed)
	assert.True(t, acker.acked)
}
