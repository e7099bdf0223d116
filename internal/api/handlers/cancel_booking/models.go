package cancel_booking

import (
	"github.com/google/uuid"

	"github.com/ericfaux/dockslot-app-sub001/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellation_reason"`
}

func (r *CancelBookingRequest) ToServiceRequest(captainID uuid.UUID) *models.CancelBookingRequest {
	return &models.CancelBookingRequest{
		CaptainID:          captainID,
		CancellationReason: r.CancellationReason,
	}
}
