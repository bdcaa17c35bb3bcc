package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNights(t *testing.T) {
	cases := []struct {
		in, out string
		nights  int
	}{
		{"2026-03-15", "2026-03-16", 1},
		{"2026-03-15", "2026-03-17", 2},
		{"2026-03-28", "2026-04-02", 5},
		{"2026-12-30", "2027-01-02", 3},
	}
	for _, tc := range cases {
		ev := BookingEvent{CheckInDate: tc.in, CheckOutDate: tc.out}
		n, err := ev.Nights()
		require.NoError(t, err)
		assert.Equal(t, tc.nights, n, "%s to %s", tc.in, tc.out)
	}
}

func TestNightsBadDate(t *testing.T) {
	ev := BookingEvent{CheckInDate: "15/03/2026", CheckOutDate: "2026-03-17"}
	_, err := ev.Nights()
	assert.Error(t, err)
}

func TestMustUnmarshal(t *testing.T) {
	body := []byte(`{"booking_id":"b-1","customer_id":"c-1","room_id":"r-1","check_in_date":"2026-03-15","check_out_date":"2026-03-17","total_price":200,"status":"CONFIRMED"}`)

	ev, err := MustUnmarshal[BookingEvent](body)
	require.NoError(t, err)
	assert.Equal(t, "b-1", ev.BookingID)
	assert.Equal(t, 200.0, ev.TotalPrice)
	assert.Equal(t, "CONFIRMED", ev.Status)
}

func TestMustUnmarshalMalformed(t *testing.T) {
	_, err := MustUnmarshal[BookingEvent]([]byte("not json"))
	assert.Error(t, err)
}
