package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus represents the lifecycle state of a charter booking
type BookingStatus string

const (
	StatusPendingDeposit BookingStatus = "pending_deposit"
	StatusConfirmed      BookingStatus = "confirmed"
	StatusWeatherHold    BookingStatus = "weather_hold"
	StatusRescheduled    BookingStatus = "rescheduled"
	StatusCompleted      BookingStatus = "completed"
	StatusCancelled      BookingStatus = "cancelled"
	StatusNoShow         BookingStatus = "no_show"
)

// PaymentStatus is tracked but never driven here; payments live with the processor
type PaymentStatus string

const (
	PaymentUnpaid      PaymentStatus = "unpaid"
	PaymentDepositPaid PaymentStatus = "deposit_paid"
	PaymentFullyPaid   PaymentStatus = "fully_paid"
	PaymentRefunded    PaymentStatus = "refunded"
)

// IsValid reports whether s is a known status
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPendingDeposit, StatusConfirmed, StatusWeatherHold, StatusRescheduled,
		StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Occupies reports whether a booking in this status blocks its time range
func (s BookingStatus) Occupies() bool {
	switch s {
	case StatusPendingDeposit, StatusConfirmed, StatusWeatherHold, StatusRescheduled:
		return true
	}
	return false
}

// Booking represents a guest reservation of a captain's trip
type Booking struct {
	ID             uuid.UUID
	CaptainID      uuid.UUID
	TripTypeID     uuid.UUID
	ScheduledStart time.Time
	ScheduledEnd   time.Time
	Status         BookingStatus
	PaymentStatus  PaymentStatus
	PartySize      int

	GuestName       string
	GuestEmail      string
	GuestPhone      *string
	SpecialRequests *string

	ConfirmationCode   string
	TotalPriceCents    int64
	DepositAmountCents int64

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status.Occupies()
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status.Occupies()
}

// IsCompleted returns true if the trip happened or the guest never showed up
func (b *Booking) IsCompleted() bool {
	return b.Status == StatusCompleted || b.Status == StatusNoShow
}

// Overlaps reports strict overlap of [start, end) with the booking's range
func (b *Booking) Overlaps(start, end time.Time) bool {
	return start.Before(b.ScheduledEnd) && end.After(b.ScheduledStart)
}

// CanTransitionTo returns true if a captain may move the booking to next
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	if !next.IsValid() || next == b.Status {
		return false
	}
	switch b.Status {
	case StatusPendingDeposit:
		return next != StatusCompleted
	case StatusConfirmed, StatusWeatherHold, StatusRescheduled:
		return true
	default:
		// completed, cancelled and no_show are terminal
		return false
	}
}

// BookingsFilter selects a captain's bookings
type BookingsFilter struct {
	CaptainID       uuid.UUID
	From            *time.Time     // scheduled_start >= From
	To              *time.Time     // scheduled_start < To
	Status          *BookingStatus
	IncludeInactive bool // include completed, cancelled and no_show
	Limit           uint64
	Offset          uint64
}

// Passenger is a person travelling on a booking
type Passenger struct {
	ID               uuid.UUID
	BookingID        uuid.UUID
	FullName         string
	Email            *string
	Phone            *string
	IsPrimaryContact bool
	CreatedAt        time.Time
}

// GuestToken grants a guest access to their booking without an account
type GuestToken struct {
	Token     string
	BookingID uuid.UUID
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired reports whether the token is no longer valid at now
func (t *GuestToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// AuditAction names an entry in the booking log
type AuditAction string

const (
	AuditBookingCreated       AuditAction = "booking_created"
	AuditBookingCancelled     AuditAction = "booking_cancelled"
	AuditBookingStatusChanged AuditAction = "status_changed"
)

// AuditLogEntry records a change to a booking
type AuditLogEntry struct {
	ID        uuid.UUID
	BookingID uuid.UUID
	CaptainID uuid.UUID
	Action    AuditAction
	Details   map[string]interface{}
	CreatedAt time.Time
}
