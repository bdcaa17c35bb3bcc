package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var ErrNotFound = errors.New("not found")

const (
	RoomAvailable = "AVAILABLE"
	RoomReserved  = "RESERVED"
)

type Room struct {
	ID            string  `json:"id"`
	RoomNumber    string  `json:"room_number"`
	Status        string  `json:"status"`
	Capacity      int32   `json:"capacity"`
	PricePerNight float64 `json:"price_per_night"`
}

type RoomClient struct {
	baseURL string
	hc      *http.Client
}

func NewRoomClient(baseURL string, timeout time.Duration) *RoomClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &RoomClient{baseURL: baseURL, hc: &http.Client{Timeout: timeout}}
}

func (c *RoomClient) GetRoomByID(ctx context.Context, id string) (*Room, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/rooms/"+id, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("room-service get: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: room %s", ErrNotFound, id)
	}
	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("room-service get: status %d: %s", res.StatusCode, body)
	}
	var room Room
	if err := json.NewDecoder(res.Body).Decode(&room); err != nil {
		return nil, fmt.Errorf("room-service decode: %w", err)
	}
	return &room, nil
}

func (c *RoomClient) UpdateRoomStatus(ctx context.Context, id, status string) error {
	payload, err := json.Marshal(map[string]string{"status": status})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+"/api/rooms/"+id+"/status", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("room-service update status: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: room %s", ErrNotFound, id)
	}
	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(res.Body)
		return fmt.Errorf("room-service update status: status %d: %s", res.StatusCode, body)
	}
	return nil
}
