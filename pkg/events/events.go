package events

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	RKBookingConfirmed = "booking.confirmed"
	RKBookingCompleted = "booking.completed"
)

// BookingEvent carries everything the billing side needs to build an
// invoice without calling back into the booking service.
type BookingEvent struct {
	BookingID    string    `json:"booking_id"`
	CustomerID   string    `json:"customer_id"`
	RoomID       string    `json:"room_id"`
	CheckInDate  string    `json:"check_in_date"`  // 2006-01-02
	CheckOutDate string    `json:"check_out_date"` // 2006-01-02
	TotalPrice   float64   `json:"total_price"`
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
}

const DateLayout = "2006-01-02"

func (e BookingEvent) Nights() (int, error) {
	in, err := time.Parse(DateLayout, e.CheckInDate)
	if err != nil {
		return 0, fmt.Errorf("parse check_in_date: %w", err)
	}
	out, err := time.Parse(DateLayout, e.CheckOutDate)
	if err != nil {
		return 0, fmt.Errorf("parse check_out_date: %w", err)
	}
	return int(out.Sub(in).Hours() / 24), nil
}

func MustUnmarshal[T any](b []byte) (T, error) {
	var t T
	if err := json.Unmarshal(b, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("decode payload failed: %w", err)
	}
	return t, nil
}
