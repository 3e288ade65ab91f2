package model_test

import (
	"rentopia/internal/domains/booking/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBooking_Nights(t *testing.T) {
	checkIn := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		checkOut time.Time
		want     int
	}{
		{name: "two nights", checkOut: checkIn.AddDate(0, 0, 2), want: 2},
		{name: "one night", checkOut: checkIn.AddDate(0, 0, 1), want: 1},
		{name: "same day", checkOut: checkIn, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := model.Booking{CheckIn: checkIn, CheckOut: tt.checkOut}
			assert.Equal(t, tt.want, b.Nights())
		})
	}
}
