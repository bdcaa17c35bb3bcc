package domain

import "errors"

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrInvalidBooking   = errors.New("invalid booking")
	ErrRoomNotAvailable = errors.New("room not available")
)
