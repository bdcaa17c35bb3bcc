package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Selma23042/hotel-management-systeme/pkg/events"
	"github.com/Selma23042/hotel-management-systeme/services/billing-service/internal/domain"
	"github.com/Selma23042/hotel-management-systeme/services/billing-service/internal/repository"
	"github.com/Selma23042/hotel-management-systeme/services/billing-service/internal/service"
)

// memRepo satisfies service.InvoiceRepository for wiring the real invoice
// service through the consumer.
type memRepo struct {
	byBooking map[string]*domain.Invoice
	nextID    int
}

func newMemRepo() *memRepo {
	return &memRepo{byBooking: map[string]*domain.Invoice{}}
}

func (r *memRepo) CreateUnique(ctx context.Context, inv *domain.Invoice) error {
	if _, ok := r.byBooking[inv.BookingID]; ok {
		return repository.ErrDuplicateBooking
	}
	r.nextID++
	inv.ID = fmt.Sprintf("inv-%d", r.nextID)
	inv.InvoiceNumber = fmt.Sprintf("INV-%d", 1700000000000+r.nextID)
	cp := *inv
	r.byBooking[inv.BookingID] = &cp
	return nil
}

func (r *memRepo) ByID(ctx context.Context, id string) (*domain.Invoice, error) {
	for _, inv := range r.byBooking {
		if inv.ID == id {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, domain.ErrInvoiceNotFound
}

func (r *memRepo) ByNumber(ctx context.Context, number string) (*domain.Invoice, error) {
	for _, inv := range r.byBooking {
		if inv.InvoiceNumber == number {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, domain.ErrInvoiceNotFound
}

func (r *memRepo) ByBookingID(ctx context.Context, bookingID string) (*domain.Invoice, error) {
	inv, ok := r.byBooking[bookingID]
	if !ok {
		return nil, domain.ErrInvoiceNotFound
	}
	cp := *inv
	return &cp, nil
}

func (r *memRepo) ByCustomer(ctx context.Context, customerID string) ([]domain.Invoice, error) {
	return nil, nil
}

func (r *memRepo) ByStatus(ctx context.Context, status domain.InvoiceStatus) ([]domain.Invoice, error) {
	return nil, nil
}

func (r *memRepo) All(ctx context.Context) ([]domain.Invoice, error) {
	var out []domain.Invoice
	for _, inv := range r.byBooking {
		out = append(out, *inv)
	}
	return out, nil
}

func (r *memRepo) Save(ctx context.Context, inv *domain.Invoice) error {
	cp := *inv
	r.byBooking[inv.BookingID] = &cp
	return nil
}

func (r *memRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.byBooking)), nil
}

func (r *memRepo) CountByStatus(ctx context.Context, status domain.InvoiceStatus) (int64, error) {
	var n int64
	for _, inv := range r.byBooking {
		if inv.Status == status {
			n++
		}
	}
	return n, nil
}

// The full completed-booking flow: first delivery creates the invoice with
// the 10% tax applied, a redelivered copy is rejected without requeue and no
// second invoice appears.
func TestCompletedDeliveryEndToEnd(t *testing.T) {
	repo := newMemRepo()
	svc := service.NewInvoiceSvc(repo, service.Config{})
	c := NewBookingConsumer(svc, nil, 1)

	ev := events.BookingEvent{
		BookingID:    "booking-1",
		CustomerID:   "cust-1",
		RoomID:       "room-1",
		CheckInDate:  "2026-03-15",
		CheckOutDate: "2026-03-17",
		TotalPrice:   200.0,
		Status:       "COMPLETED",
	}
	body, err := json.Marshal(ev)
	require.NoError(t, err)

	first := &fakeAcker{}
	c.Handle(context.Background(), amqp.Delivery{
		Acknowledger: first, RoutingKey: events.RKBookingCompleted, Body: body,
	})
	assert.True(t, first.acked)

	inv, err := repo.ByBookingID(context.Background(), "booking-1")
	require.NoError(t, err)
	assert.Equal(t, int32(2), inv.NumberOfNights)
	assert.Equal(t, 200.0, inv.RoomCharges)
	assert.Equal(t, 20.0, inv.TaxAmount)
	assert.Equal(t, 220.0, inv.TotalAmount)
	assert.Equal(t, domain.InvoicePending, inv.Status)

	second := &fakeAcker{}
	c.Handle(context.Background(), amqp.Delivery{
		Acknowledger: second, RoutingKey: events.RKBookingCompleted, Body: body,
	})
	assert.True(t, second.nacked)
	assert.False(t, second.requeued)

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
