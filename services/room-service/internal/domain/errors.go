package domain

import "errors"

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomExists   = errors.New("room number already exists")
	ErrInvalidRoom  = errors.New("invalid room")
)
