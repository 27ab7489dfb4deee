package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBookingStatus(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    BookingStatus
		wantErr bool
	}{
		{"pending", "Pending", StatusPending, false},
		{"confirmed", "Confirmed", StatusConfirmed, false},
		{"canceled", "Canceled", StatusCanceled, false},
		{"lowercase is rejected", "pending", "", true},
		{"british spelling is rejected", "Cancelled", "", true},
		{"empty", "", "", true},
		{"garbage", "Approved", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBookingStatus(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBookingStatus_CarAvailable(t *testing.T) {
	assert.True(t, StatusPending.CarAvailable())
	assert.True(t, StatusCanceled.CarAvailable())
	assert.False(t, StatusConfirmed.CarAvailable())
}

func TestBookingStatus_CountsBooking(t *testing.T) {
	assert.True(t, StatusConfirmed.CountsBooking())
	assert.False(t, StatusPending.CountsBooking())
	assert.False(t, StatusCanceled.CountsBooking())
}
