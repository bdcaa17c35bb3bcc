package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Selma23042/hotel-management-systeme/pkg/events"
	"github.com/Selma23042/hotel-management-systeme/services/booking-service/internal/client"
	"github.com/Selma23042/hotel-management-systeme/services/booking-service/internal/domain"
	"github.com/Selma23042/hotel-management-systeme/services/booking-service/internal/repository"
)

type BookingRepository interface {
	CreateWithNoConflict(ctx context.Context, b *domain.Booking) error
	ByID(ctx context.Context, id string) (*domain.Booking, error)
	ByCustomer(ctx context.Context, customerID string) ([]domain.Booking, error)
	ByRoom(ctx context.Context, roomID string) ([]domain.Booking, error)
	All(ctx context.Context) ([]domain.Booking, error)
	UpdateStatusFrom(ctx context.Context, id string, from []domain.BookingStatus, to domain.BookingStatus) (*domain.Booking, error)
	CheckInsOn(ctx context.Context, day time.Time) ([]domain.Booking, error)
	CheckOutsOn(ctx context.Context, day time.Time) ([]domain.Booking, error)
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.BookingStatus) (int64, error)
}

type RoomDirectory interface {
	GetRoomByID(ctx context.Context, id string) (*client.Room, error)
	UpdateRoomStatus(ctx context.Context, id, status string) error
}

type CustomerDirectory interface {
	GetCustomerByID(ctx context.Context, id string) (*client.Customer, error)
}

type EventPublisher interface {
	PublishBookingConfirmed(ctx context.Context, ev events.BookingEvent) error
	PublishBookingCompleted(ctx context.Context, ev events.BookingEvent) error
}

type CreateInput struct {
	CustomerID      string
	RoomID          string
	CheckInDate     time.Time
	CheckOutDate    time.Time
	NumberOfGuests  int32
	SpecialRequests string
}

// BookingDetails is a booking with the directory lookups resolved for display.
type BookingDetails struct {
	domain.Booking
	CustomerName string `json:"customer_name"`
	RoomNumber   string `json:"room_number"`
}

type BookingSvc struct {
	repo      BookingRepository
	rooms     RoomDirectory
	customers CustomerDirectory
	pub       EventPublisher
	now       func() time.Time
}

func NewBookingSvc(repo BookingRepository, rooms RoomDirectory, customers CustomerDirectory, pub EventPublisher) *BookingSvc {
	return &BookingSvc{repo: repo, rooms: rooms, customers: customers, pub: pub, now: time.Now}
}

// WithClock overrides the time source; tests pin "today" with it.
func (s *BookingSvc) WithClock(now func() time.Time) *BookingSvc {
	s.now = now
	return s
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *BookingSvc) Create(ctx context.Context, in CreateInput) (*BookingDetails, error) {
	checkIn := truncateToDay(in.CheckInDate)
	checkOut := truncateToDay(in.CheckOutDate)
	today := truncateToDay(s.now())

	if checkIn.Before(today) {
		return nil, fmt.Errorf("%w: check-in date cannot be in the past", domain.ErrInvalidBooking)
	}
	if !checkOut.After(checkIn) {
		return nil, fmt.Errorf("%w: check-out date must be after check-in date", domain.ErrInvalidBooking)
	}

	customer, err := s.customers.GetCustomerByID(ctx, in.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("%w: customer not found with id %s", domain.ErrInvalidBooking, in.CustomerID)
	}
	room, err := s.rooms.GetRoomByID(ctx, in.RoomID)
	if err != nil {
		return nil, fmt.Errorf("%w: room not found with id %s", domain.ErrInvalidBooking, in.RoomID)
	}

	if room.Status != client.RoomAvailable {
		return nil, fmt.Errorf("%w: room is not available", domain.ErrRoomNotAvailable)
	}
	if in.NumberOfGuests > room.Capacity {
		return nil, fmt.Errorf("%w: number of guests exceeds room capacity %d", domain.ErrInvalidBooking, room.Capacity)
	}

	nights := int(checkOut.Sub(checkIn).Hours() / 24)
	b := &domain.Booking{
		CustomerID:      in.CustomerID,
		RoomID:          in.RoomID,
		CheckInDate:     checkIn,
		CheckOutDate:    checkOut,
		NumberOfGuests:  in.NumberOfGuests,
		TotalPrice:      room.PricePerNight * float64(nights),
		Status:          domain.BookingPending,
		SpecialRequests: in.SpecialRequests,
	}
	if err := s.repo.CreateWithNoConflict(ctx, b); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%w: room is already booked for the selected dates", domain.ErrRoomNotAvailable)
		}
		return nil, err
	}
	log.Printf("[booking] created booking %s for customer %s room %s", b.ID, b.CustomerID, b.RoomID)

	return &BookingDetails{Booking: *b, CustomerName: customer.FullName(), RoomNumber: room.RoomNumber}, nil
}

// Confirm claims the room before persisting the transition: a booking must
// never end up CONFIRMED against a room the system failed to reserve.
func (s *BookingSvc) Confirm(ctx context.Context, id string) (*BookingDetails, error) {
	b, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BookingPending {
		return nil, fmt.Errorf("%w: only pending bookings can be confirmed", domain.ErrInvalidBooking)
	}

	if err := s.rooms.UpdateRoomStatus(ctx, b.RoomID, client.RoomReserved); err != nil {
		log.Printf("[booking] failed to reserve room %s: %v", b.RoomID, err)
		return nil, fmt.Errorf("%w: failed to reserve room", domain.ErrInvalidBooking)
	}

	confirmed, err := s.repo.UpdateStatusFrom(ctx, id, []domain.BookingStatus{domain.BookingPending}, domain.BookingConfirmed)
	if err != nil {
		// lost the race for the transition; give the claimed room back
		if errors.Is(err, repository.ErrStatusConflict) {
			if relErr := s.rooms.UpdateRoomStatus(ctx, b.RoomID, client.RoomAvailable); relErr != nil {
				log.Printf("[booking] failed to release room %s after lost confirm: %v", b.RoomID, relErr)
			}
			return nil, fmt.Errorf("%w: only pending bookings can be confirmed", domain.ErrInvalidBooking)
		}
		return nil, err
	}

	if err := s.pub.PublishBookingConfirmed(ctx, s.toEvent(confirmed)); err != nil {
		// the booking is durably CONFIRMED; the event is lost until replayed
		return nil, fmt.Errorf("booking %s confirmed but event not published: %w", id, err)
	}
	log.Printf("[booking] confirmed booking %s", id)

	return s.resolve(ctx, confirmed)
}

func (s *BookingSvc) Cancel(ctx context.Context, id string) (*BookingDetails, error) {
	b, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status == domain.BookingCompleted || b.Status == domain.BookingCancelled {
		return nil, fmt.Errorf("%w: cannot cancel a %s booking", domain.ErrInvalidBooking, b.Status)
	}

	// best-effort: cancellation is not blocked by inventory cleanup failures
	if err := s.rooms.UpdateRoomStatus(ctx, b.RoomID, client.RoomAvailable); err != nil {
		log.Printf("[booking] failed to release room %s on cancel: %v", b.RoomID, err)
	}

	cancelled, err := s.repo.UpdateStatusFrom(ctx, id,
		[]domain.BookingStatus{domain.BookingPending, domain.BookingConfirmed}, domain.BookingCancelled)
	if err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, fmt.Errorf("%w: cannot cancel this booking", domain.ErrInvalidBooking)
		}
		return nil, err
	}
	log.Printf("[booking] cancelled booking %s", id)

	return s.resolve(ctx, cancelled)
}

// Complete is the sole trigger for invoice creation downstream.
func (s *BookingSvc) Complete(ctx context.Context, id string) (*BookingDetails, error) {
	b, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != domain.BookingConfirmed {
		return nil, fmt.Errorf("%w: only confirmed bookings can be completed", domain.ErrInvalidBooking)
	}

	if err := s.rooms.UpdateRoomStatus(ctx, b.RoomID, client.RoomAvailable); err != nil {
		log.Printf("[booking] failed to release room %s on complete: %v", b.RoomID, err)
	}

	completed, err := s.repo.UpdateStatusFrom(ctx, id, []domain.BookingStatus{domain.BookingConfirmed}, domain.BookingCompleted)
	if err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, fmt.Errorf("%w: only confirmed bookings can be completed", domain.ErrInvalidBooking)
		}
		return nil, err
	}

	if err := s.pub.PublishBookingCompleted(ctx, s.toEvent(completed)); err != nil {
		return nil, fmt.Errorf("booking %s completed but event not published: %w", id, err)
	}
	log.Printf("[booking] completed booking %s, invoice event published", id)

	return s.resolve(ctx, completed)
}

func (s *BookingSvc) Get(ctx context.Context, id string) (*BookingDetails, error) {
	b, err := s.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, b)
}

func (s *BookingSvc) ListByCustomer(ctx context.Context, customerID string) ([]BookingDetails, error) {
	bs, err := s.repo.ByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return s.resolveAll(ctx, bs)
}

func (s *BookingSvc) ListByRoom(ctx context.Context, roomID string) ([]BookingDetails, error) {
	bs, err := s.repo.ByRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return s.resolveAll(ctx, bs)
}

func (s *BookingSvc) List(ctx context.Context) ([]BookingDetails, error) {
	bs, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	return s.resolveAll(ctx, bs)
}

func (s *BookingSvc) CheckInsToday(ctx context.Context) ([]BookingDetails, error) {
	bs, err := s.repo.CheckInsOn(ctx, truncateToDay(s.now()))
	if err != nil {
		return nil, err
	}
	return s.resolveAll(ctx, bs)
}

func (s *BookingSvc) CheckOutsToday(ctx context.Context) ([]BookingDetails, error) {
	bs, err := s.repo.CheckOutsOn(ctx, truncateToDay(s.now()))
	if err != nil {
		return nil, err
	}
	return s.resolveAll(ctx, bs)
}

func (s *BookingSvc) CountAll(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *BookingSvc) CountByStatus(ctx context.Context, status domain.BookingStatus) (int64, error) {
	if !status.Valid() {
		return 0, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidBooking, status)
	}
	return s.repo.CountByStatus(ctx, status)
}

func (s *BookingSvc) toEvent(b *domain.Booking) events.BookingEvent {
	return events.BookingEvent{
		BookingID:    b.ID,
		CustomerID:   b.CustomerID,
		RoomID:       b.RoomID,
		CheckInDate:  b.CheckInDate.Format(events.DateLayout),
		CheckOutDate: b.CheckOutDate.Format(events.DateLayout),
		TotalPrice:   b.TotalPrice,
		Status:       string(b.Status),
		Timestamp:    s.now().UTC(),
	}
}

func (s *BookingSvc) resolve(ctx context.Context, b *domain.Booking) (*BookingDetails, error) {
	d := BookingDetails{Booking: *b}
	if customer, err := s.customers.GetCustomerByID(ctx, b.CustomerID); err == nil {
		d.CustomerName = customer.FullName()
	}
	if room, err := s.rooms.GetRoomByID(ctx, b.RoomID); err == nil {
		d.RoomNumber = room.RoomNumber
	}
	return &d, nil
}

func (s *BookingSvc) resolveAll(ctx context.Context, bs []domain.Booking) ([]BookingDetails, error) {
	out := make([]BookingDetails, 0, len(bs))
	for i := range bs {
		d, err := s.resolve(ctx, &bs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}
