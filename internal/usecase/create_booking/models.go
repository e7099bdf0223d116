package create_booking

import (
	"time"

	"github.com/google/uuid"
)

// Request is a guest's booking submission. Tags drive validator/v10; json names
// are used in field-specific messages.
type Request struct {
	CaptainID       string           `json:"captain_id" validate:"required,uuid"`
	TripTypeID      string           `json:"trip_type_id" validate:"required,uuid"`
	ScheduledDate   string           `json:"scheduled_date" validate:"required,datetime=2006-01-02"`
	ScheduledTime   string           `json:"scheduled_time" validate:"required,datetime=15:04"`
	GuestName       string           `json:"guest_name" validate:"required,max=200"`
	GuestEmail      string           `json:"guest_email" validate:"required,email,max=254"`
	GuestPhone      *string          `json:"guest_phone" validate:"omitempty,phone"`
	PartySize       int              `json:"party_size"`
	Passengers      []PassengerInput `json:"passengers" validate:"omitempty,dive"`
	SpecialRequests *string          `json:"special_requests" validate:"omitempty,max=1000"`
}

// PassengerInput is an additional traveller besides the primary contact
type PassengerInput struct {
	FullName string  `json:"full_name" validate:"required,max=200"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone" validate:"omitempty,phone"`
}

// Response is returned after the booking is committed
type Response struct {
	BookingID          uuid.UUID
	ConfirmationCode   string
	GuestToken         string
	ScheduledStart     time.Time
	ScheduledEnd       time.Time
	TotalPriceCents    int64
	DepositAmountCents int64
}
