package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/Selma23042/hotel-management-systeme/pkg/events"
	"github.com/Selma23042/hotel-management-systeme/services/billing-service/internal/domain"
	"github.com/Selma23042/hotel-management-systeme/services/billing-service/internal/repository"
)

// DefaultTaxRate applies when no rate is configured.
const DefaultTaxRate = 0.10

type InvoiceRepository interface {
	CreateUnique(ctx context.Context, inv *domain.Invoice) error
	ByID(ctx context.Context, id string) (*domain.Invoice, error)
	ByNumber(ctx context.Context, number string) (*domain.Invoice, error)
	ByBookingID(ctx context.Context, bookingID string) (*domain.Invoice, error)
	ByCustomer(ctx context.Context, customerID string) ([]domain.Invoice, error)
	ByStatus(ctx context.Context, status domain.InvoiceStatus) ([]domain.Invoice, error)
	All(ctx context.Context) ([]domain.Invoice, error)
	Save(ctx context.Context, inv *domain.Invoice) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.InvoiceStatus) (int64, error)
}

type Config struct {
	TaxRate float64
}

type InvoiceSvc struct {
	repo    InvoiceRepository
	taxRate float64
	now     func() time.Time
}

func NewInvoiceSvc(repo InvoiceRepository, cfg Config) *InvoiceSvc {
	rate := cfg.TaxRate
	if rate <= 0 {
		rate = DefaultTaxRate
	}
	return &InvoiceSvc{repo: repo, taxRate: rate, now: time.Now}
}

// WithClock overrides the time source, for tests.
func (s *InvoiceSvc) WithClock(now func() time.Time) *InvoiceSvc {
	s.now = now
	return s
}

// round2 rounds half up to two decimal places. Charges are never negative,
// so math.Round matches half-up here.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// CreateFromBooking materializes the invoice for a completed booking. The
// repository guarantees at most one invoice per booking, which makes redelivery
// of the same event safe.
func (s *InvoiceSvc) CreateFromBooking(ctx context.Context, ev events.BookingEvent) (*domain.Invoice, error) {
	if ev.BookingID == "" {
		return nil, fmt.Errorf("%w: booking id is required", domain.ErrInvalidInvoice)
	}
	nights, err := ev.Nights()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInvoice, err)
	}
	if nights <= 0 {
		return nil, fmt.Errorf("%w: stay must be at least one night", domain.ErrInvalidInvoice)
	}
	checkIn, _ := time.Parse(events.DateLayout, ev.CheckInDate)
	checkOut, _ := time.Parse(events.DateLayout, ev.CheckOutDate)

	charges := round2(ev.TotalPrice)
	tax := round2(charges * s.taxRate)
	total := round2(charges + tax)

	inv := &domain.Invoice{
		BookingID:      ev.BookingID,
		CustomerID:     ev.CustomerID,
		RoomID:         ev.RoomID,
		CheckInDate:    checkIn,
		CheckOutDate:   checkOut,
		NumberOfNights: int32(nights),
		RoomCharges:    charges,
		TaxAmount:      tax,
		TotalAmount:    total,
		Status:         domain.InvoicePending,
	}
	if err := s.repo.CreateUnique(ctx, inv); err != nil {
		if errors.Is(err, repository.ErrDuplicateBooking) {
			return nil, fmt.Errorf("%w: invoice already exists for booking %s", domain.ErrInvalidInvoice, ev.BookingID)
		}
		return nil, err
	}
	return inv, nil
}

// CreateInvoiceInput is the manual creation path; it goes through the same
// guard and math as the event-driven one.
type CreateInvoiceInput struct {
	BookingID    string
	CustomerID   string
	RoomID       string
	CheckInDate  string // 2006-01-02
	CheckOutDate string // 2006-01-02
	RoomCharges  float64
}

func (s *InvoiceSvc) CreateInvoice(ctx context.Context, in CreateInvoiceInput) (*domain.Invoice, error) {
	return s.CreateFromBooking(ctx, events.BookingEvent{
		BookingID:    in.BookingID,
		CustomerID:   in.CustomerID,
		RoomID:       in.RoomID,
		CheckInDate:  in.CheckInDate,
		CheckOutDate: in.CheckOutDate,
		TotalPrice:   in.RoomCharges,
	})
}

// HandleBookingConfirmed records the confirmation; no invoice is drafted until
// the stay completes.
func (s *InvoiceSvc) HandleBookingConfirmed(ctx context.Context, ev events.BookingEvent) error {
	log.Printf("[billing] booking %s confirmed for customer %s, awaiting completion", ev.BookingID, ev.CustomerID)
	return nil
}

// ProcessPayment settles a pending invoice with the given method.
func (s *InvoiceSvc) ProcessPayment(ctx context.Context, id string, method string) (*domain.Invoice, error) {
	inv, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch inv.Status {
	case domain.InvoicePaid:
		return nil, fmt.Errorf("%w: invoice is already paid", domain.ErrInvalidInvoice)
	case domain.InvoiceCancelled:
		return nil, fmt.Errorf("%w: cannot pay a cancelled invoice", domain.ErrInvalidInvoice)
	}
	m := domain.PaymentMethod(method)
	if !m.Valid() {
		return nil, fmt.Errorf("%w: invalid payment method %q", domain.ErrInvalidInvoice, method)
	}
	paidAt := s.now().UTC()
	inv.Status = domain.InvoicePaid
	inv.PaymentMethod = &m
	inv.PaidAt = &paidAt
	if err := s.repo.Save(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// Cancel voids a pending invoice. Paid and cancelled invoices are terminal.
func (s *InvoiceSvc) Cancel(ctx context.Context, id string) (*domain.Invoice, error) {
	inv, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch inv.Status {
	case domain.InvoicePaid:
		return nil, fmt.Errorf("%w: cannot cancel a paid invoice", domain.ErrInvalidInvoice)
	case domain.InvoiceCancelled:
		return nil, fmt.Errorf("%w: invoice is already cancelled", domain.ErrInvalidInvoice)
	}
	inv.Status = domain.InvoiceCancelled
	if err := s.repo.Save(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *InvoiceSvc) Get(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.repo.ByID(ctx, id)
}

func (s *InvoiceSvc) GetByNumber(ctx context.Context, number string) (*domain.Invoice, error) {
	return s.repo.ByNumber(ctx, number)
}

func (s *InvoiceSvc) GetByBooking(ctx context.Context, bookingID string) (*domain.Invoice, error) {
	return s.repo.ByBookingID(ctx, bookingID)
}

func (s *InvoiceSvc) ListByCustomer(ctx context.Context, customerID string) ([]domain.Invoice, error) {
	return s.repo.ByCustomer(ctx, customerID)
}

func (s *InvoiceSvc) ListByStatus(ctx context.Context, status string) ([]domain.Invoice, error) {
	st := domain.InvoiceStatus(status)
	if !st.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInvoice, status)
	}
	return s.repo.ByStatus(ctx, st)
}

func (s *InvoiceSvc) List(ctx context.Context) ([]domain.Invoice, error) {
	return s.repo.All(ctx)
}

func (s *InvoiceSvc) CountAll(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *InvoiceSvc) CountByStatus(ctx context.Context, status string) (int64, error) {
	st := domain.InvoiceStatus(status)
	if !st.Valid() {
		return 0, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInvoice, status)
	}
	return s.repo.CountByStatus(ctx, st)
}
