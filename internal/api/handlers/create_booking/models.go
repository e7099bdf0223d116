package create_booking

import (
	"time"

	"github.com/google/uuid"

	createBooking "github.com/ericfaux/dockslot-app-sub001/internal/usecase/create_booking"
)

// BookingResponse HTTP response model. guest_token is the guest's only way
// back to the booking, so it is returned exactly once here.
type BookingResponse struct {
	BookingID          uuid.UUID `json:"booking_id"`
	ConfirmationCode   string    `json:"confirmation_code"`
	GuestToken         string    `json:"guest_token"`
	ScheduledStart     string    `json:"scheduled_start"`
	ScheduledEnd       string    `json:"scheduled_end"`
	TotalPriceCents    int64     `json:"total_price_cents"`
	DepositAmountCents int64     `json:"deposit_amount_cents"`
}

func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		BookingID:          resp.BookingID,
		ConfirmationCode:   resp.ConfirmationCode,
		GuestToken:         resp.GuestToken,
		ScheduledStart:     resp.ScheduledStart.Format(time.RFC3339),
		ScheduledEnd:       resp.ScheduledEnd.Format(time.RFC3339),
		TotalPriceCents:    resp.TotalPriceCents,
		DepositAmountCents: resp.DepositAmountCents,
	}
}
