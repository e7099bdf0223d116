package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event types written to the outbox
const (
	EventBookingCreated       = "booking.created"
	EventBookingCancelled     = "booking.cancelled"
	EventBookingStatusChanged = "booking.status_changed"
)

const AggregateBooking = "booking"

// OutboxEvent is written in the same transaction as the change it describes
type OutboxEvent struct {
	ID            uuid.UUID
	AggregateType string
	AggregateID   uuid.UUID
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
	PublishedAt   *time.Time
}

// BookingEventPayload is the JSON body of booking events
type BookingEventPayload struct {
	BookingID        uuid.UUID     `json:"booking_id"`
	CaptainID        uuid.UUID     `json:"captain_id"`
	TripTypeID       uuid.UUID     `json:"trip_type_id"`
	Status           BookingStatus `json:"status"`
	PreviousStatus   BookingStatus `json:"previous_status,omitempty"`
	ConfirmationCode string        `json:"confirmation_code"`
	ScheduledStart   time.Time     `json:"scheduled_start"`
	ScheduledEnd     time.Time     `json:"scheduled_end"`
	GuestEmail       string        `json:"guest_email"`
	OccurredAt       time.Time     `json:"occurred_at"`
}
