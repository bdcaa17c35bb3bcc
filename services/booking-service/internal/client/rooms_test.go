package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRoomByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/rooms/room-1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(Room{
			ID:            "room-1",
			RoomNumber:    "101",
			Status:        RoomAvailable,
			Capacity:      2,
			PricePerNight: 100.0,
		})
	}))
	defer srv.Close()

	c := NewRoomClient(srv.URL, time.Second)
	room, err := c.GetRoomByID(context.Background(), "room-1")
	require.NoError(t, err)
	assert.Equal(t, "101", room.RoomNumber)
	assert.Equal(t, RoomAvailable, room.Status)
	assert.Equal(t, 100.0, room.PricePerNight)
}

func TestGetRoomByIDNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"room not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewRoomClient(srv.URL, time.Second)
	_, err := c.GetRoomByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRoomStatus(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/rooms/room-1/status", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewRoomClient(srv.URL, time.Second)
	require.NoError(t, c.UpdateRoomStatus(context.Background(), "room-1", RoomReserved))
	assert.Equal(t, RoomReserved, got["status"])
}

func TestUpdateRoomStatusUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewRoomClient(srv.URL, time.Second)
	err := c.UpdateRoomStatus(context.Background(), "room-1", RoomReserved)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
