package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Selma23042/hotel-management-systeme/pkg/events"
	"github.com/Selma23042/hotel-management-systeme/services/booking-service/internal/client"
	"github.com/Selma23042/hotel-management-systeme/services/booking-service/internal/domain"
	"github.com/Selma23042/hotel-management-systeme/services/booking-service/internal/repository"
)

var testNow = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fakeRepo struct {
	bookings  map[string]*domain.Booking
	createErr error
	nextID    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: map[string]*domain.Booking{}}
}

func (r *fakeRepo) CreateWithNoConflict(ctx context.Context, b *domain.Booking) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	b.ID = fmt.Sprintf("b-%d", r.nextID)
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeRepo) ByID(ctx context.Context, id string) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *fakeRepo) ByCustomer(ctx context.Context, customerID string) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range r.bookings {
		if b.CustomerID == customerID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeRepo) ByRoom(ctx context.Context, roomID string) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range r.bookings {
		if b.RoomID == roomID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeRepo) All(ctx context.Context) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range r.bookings {
		out = append(out, *b)
	}
	return out, nil
}

func (r *fakeRepo) UpdateStatusFrom(ctx context.Context, id string, from []domain.BookingStatus, to domain.BookingStatus) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	for _, f := range from {
		if b.Status == f {
			b.Status = to
			cp := *b
			return &cp, nil
		}
	}
	return nil, repository.ErrStatusConflict
}

func (r *fakeRepo) CheckInsOn(ctx context.Context, d time.Time) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range r.bookings {
		if b.CheckInDate.Equal(d) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeRepo) CheckOutsOn(ctx context.Context, d time.Time) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range r.bookings {
		if b.CheckOutDate.Equal(d) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.bookings)), nil
}

func (r *fakeRepo) CountByStatus(ctx context.Context, s domain.BookingStatus) (int64, error) {
	var n int64
	for _, b := range r.bookings {
		if b.Status == s {
			n++
		}
	}
	return n, nil
}

type fakeRooms struct {
	room          *client.Room
	getErr        error
	updateErr     error
	statusUpdates []string
}

func (f *fakeRooms) GetRoomByID(ctx context.Context, id string) (*client.Room, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	cp := *f.room
	return &cp, nil
}

func (f *fakeRooms) UpdateRoomStatus(ctx context.Context, id, status string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.statusUpdates = append(f.statusUpdates, status)
	f.room.Status = status
	return nil
}

type fakeCustomers struct {
	customer *client.Customer
	getErr   error
}

func (f *fakeCustomers) GetCustomerByID(ctx context.Context, id string) (*client.Customer, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	cp := *f.customer
	return &cp, nil
}

type fakePub struct {
	confirmed  []events.BookingEvent
	completed  []events.BookingEvent
	publishErr error
}

func (f *fakePub) PublishBookingConfirmed(ctx context.Context, ev events.BookingEvent) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.confirmed = append(f.confirmed, ev)
	return nil
}

func (f *fakePub) PublishBookingCompleted(ctx context.Context, ev events.BookingEvent) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.completed = append(f.completed, ev)
	return nil
}

func newTestSvc() (*BookingSvc, *fakeRepo, *fakeRooms, *fakePub) {
	repo := newFakeRepo()
	rooms := &fakeRooms{room: &client.Room{
		ID:            "room-1",
		RoomNumber:    "101",
		Status:        client.RoomAvailable,
		Capacity:      2,
		PricePerNight: 100.0,
	}}
	customers := &fakeCustomers{customer: &client.Customer{
		ID:        "cust-1",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}}
	pub := &fakePub{}
	svc := NewBookingSvc(repo, rooms, customers, pub).WithClock(func() time.Time { return testNow })
	return svc, repo, rooms, pub
}

func validInput() CreateInput {
	return CreateInput{
		CustomerID:     "cust-1",
		RoomID:         "room-1",
		CheckInDate:    day(2026, 3, 15),
		CheckOutDate:   day(2026, 3, 17),
		NumberOfGuests: 2,
	}
}

func TestCreateBooking(t *testing.T) {
	svc, _, _, _ := newTestSvc()

	d, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, domain.BookingPending, d.Status)
	assert.Equal(t, 200.0, d.TotalPrice) // 2 nights at 100
	assert.Equal(t, "Ada Lovelace", d.CustomerName)
	assert.Equal(t, "101", d.RoomNumber)
	assert.NotEmpty(t, d.ID)
}

func TestCreateBookingPastCheckIn(t *testing.T) {
	svc, _, _, _ := newTestSvc()

	in := validInput()
	in.CheckInDate = day(2026, 3, 9)

	_, err := svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidBooking)
}

func TestCreateBookingCheckInTodayAllowed(t *testing.T) {
	svc, _, _, _ := newTestSvc()

	in := validInput()
	in.CheckInDate = day(2026, 3, 10)
	in.CheckOutDate = day(2026, 3, 11)

	_, err := svc.Create(context.Background(), in)
	assert.NoError(t, err)
}

func TestCreateBookingZeroNights(t *testing.T) {
	svc, _, _, _ := newTestSvc()

	in := validInput()
	in.CheckOutDate = in.CheckInDate

	_, err := svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidBooking)
}

func TestCreateBookingTooManyGuests(t *testing.T) {
	svc, _, _, _ := newTestSvc()

	in := validInput()
	in.NumberOfGuests = 3

	_, err := svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidBooking)
}

func TestCreateBookingRoomNotAvailable(t *testing.T) {
	svc, _, rooms, _ := newTestSvc()
	rooms.room.Status = client.RoomReserved

	_, err := svc.Create(context.Background(), validInput())
	assert.ErrorIs(t, err, domain.ErrRoomNotAvailable)
}

func TestCreateBookingDateConflict(t *testing.T) {
	svc, repo, _, _ := newTestSvc()
	repo.createErr = repository.ErrConflict

	_, err := svc.Create(context.Background(), validInput())
	assert.ErrorIs(t, err, domain.ErrRoomNotAvailable)
}

func TestCreateBookingUnknownCustomer(t *testing.T) {
	repo := newFakeRepo()
	rooms := &fakeRooms{room: &client.Room{Status: client.RoomAvailable, Capacity: 2}}
	customers := &fakeCustomers{getErr: client.ErrNotFound}
	svc := NewBookingSvc(repo, rooms, customers, &fakePub{}).WithClock(func() time.Time { return testNow })

	_, err := svc.Create(context.Background(), validInput())
	assert.ErrorIs(t, err, domain.ErrInvalidBooking)
}

func TestConfirmBooking(t *testing.T) {
	svc, repo, rooms, pub := newTestSvc()

	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	d, err := svc.Confirm(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, d.Status)

	stored, _ := repo.ByID(context.Background(), created.ID)
	assert.Equal(t, domain.BookingConfirmed, stored.Status)
	assert.Contains(t, rooms.statusUpdates, client.RoomReserved)

	require.Len(t, pub.confirmed, 1)
	ev := pub.confirmed[0]
	assert.Equal(t, created.ID, ev.BookingID)
	assert.Equal(t, "2026-03-15", ev.CheckInDate)
	assert.Equal(t, "2026-03-17", ev.CheckOutDate)
	assert.Equal(t, 200.0, ev.TotalPrice)
	assert.Equal(t, string(domain.BookingConfirmed), ev.Status)
}

func TestConfirmRequiresPending(t *testing.T) {
	svc, _, _, _ := newTestSvc()

	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), created.ID)
	require.NoError(t, err)

	// a second confirm must not be idempotent
	_, err = svc.Confirm(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidBooking)
}

func TestConfirmAbortsWhenRoomClaimFails(t *testing.T) {
	svc, repo, rooms, pub := newTestSvc()

	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	rooms.updateErr = errors.New("room service down")

	_, err = svc.Confirm(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidBooking)

	stored, _ := repo.ByID(context.Background(), created.ID)
	assert.Equal(t, domain.BookingPending, stored.Status)
	assert.Empty(t, pub.confirmed)
}

func TestConfirmPublishFailureKeepsState(t *testing.T) {
	svc, repo, _, pub := newTestSvc()

	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	pub.publishErr = errors.New("broker unreachable")

	_, err = svc.Confirm(context.Background(), created.ID)
	require.Error(t, err)

	stored, _ := repo.ByID(context.Background(), created.ID)
	assert.Equal(t, domain.BookingConfirmed, stored.Status)
}

func TestCancelPendingBooking(t *testing.T) {
	svc, repo, rooms, _ := newTestSvc()

	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	d, err := svc.Cancel(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, d.Status)
	assert.Contains(t, rooms.statusUpdates, client.RoomAvailable)

	stored, _ := repo.ByID(context.Background(), created.ID)
	assert.Equal(t, domain.BookingCancelled, stored.Status)
}

func TestCancelConfirmedBooking(t *testing.T) {
	svc, _, _, _ := newTestSvc()

	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	_, err = svc.Confirm(context.Background(), created.ID)
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), created.ID)
	assert.NoError(t, err)
}

func TestCancelCompletedBookingRejected(t *testing.T) {
	svc, _, _, _ := newTestSvc()

	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	_, err = svc.Confirm(context.Background(), created.ID)
	require.NoError(t, err)
	_, err = svc.Complete(context.Background(), created.ID)
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidBooking)
}

func TestCancelCancelledBookingRejected(t *testing.T) {
	svc, _, _, _ := newTestSvc()

	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	_, err = svc.Cancel(context.Background(), created.ID)
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidBooking)
}

func TestCancelSurvivesRoomReleaseFailure(t *testing.T) {
	svc, repo, rooms, _ := newTestSvc()

	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	rooms.updateErr = errors.New("room service down")

	_, err = svc.Cancel(context.Background(), created.ID)
	require.NoError(t, err)

	stored, _ := repo.ByID(context.Background(), created.ID)
	assert.Equal(t, domain.BookingCancelled, stored.Status)
}

func TestCompleteBooking(t *testing.T) {
	svc, repo, _, pub := newTestSvc()

	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	_, err = svc.Confirm(context.Background(), created.ID)
	require.NoError(t, err)

	d, err := svc.Complete(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, d.Status)

	stored, _ := repo.ByID(context.Background(), created.ID)
	assert.Equal(t, domain.BookingCompleted, stored.Status)

	require.Len(t, pub.completed, 1)
	assert.Equal(t, created.ID, pub.completed[0].BookingID)
	assert.Equal(t, 200.0, pub.completed[0].TotalPrice)
}

func TestCompleteRequiresConfirmed(t *testing.T) {
	svc, _, _, _ := newTestSvc()

	created, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), created.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidBooking)
}

func TestGetUnknownBooking(t *testing.T) {
	svc, _, _, _ := newTestSvc()

	_, err := svc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestCountByStatusRejectsUnknown(t *testing.T) {
	svc, _, _, _ := newTestSvc()

	_, err := svc.CountByStatus(context.Background(), "WHATEVER")
	assert.ErrorIs(t, err, domain.ErrInvalidBooking)
}
