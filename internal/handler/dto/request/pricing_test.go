//go:build unit

package request_test

import (
	"testing"
	"time"

	"booking-pricing/internal/domain/booking"
	"booking-pricing/internal/handler/dto/request"
	"booking-pricing/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomProductPricingRequest_ToQuery_StayBounds(t *testing.T) {
	tests := []struct {
		name      string
		departure string
		wantErr   bool
	}{
		{name: "one night", departure: "2025-09-02"},
		{name: "exactly 365 nights", departure: "2026-09-01"},
		{name: "366 nights", departure: "2026-09-02", wantErr: true},
		{name: "same day", departure: "2025-09-01", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := request.RoomProductPricingRequest{
				HotelID:   uuid.New(),
				Arrival:   "2025-09-01",
				Departure: tt.departure,
				Occupancy: request.OccupancyRequest{Adults: 2},
			}

			q, err := req.ToQuery()

			if tt.wantErr {
				assert.True(t, errs.Is(err, booking.ErrInvalidInput), "expected invalid input, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), q.Arrival)
		})
	}
}
