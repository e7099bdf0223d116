package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ericfaux/dockslot-app-sub001/internal/domain"
)

var (
	// ErrInvalidStatus is returned for an unknown status string
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request models

// CancelBookingRequest asks to cancel a booking on behalf of its captain
type CancelBookingRequest struct {
	CaptainID          uuid.UUID `json:"-"`
	CancellationReason string    `json:"cancellation_reason"`
}

// UpdateStatusRequest moves a booking to another status
type UpdateStatusRequest struct {
	CaptainID uuid.UUID `json:"-"`
	Status    string    `json:"status"`
}

// GetCaptainBookingsRequest lists a captain's bookings
type GetCaptainBookingsRequest struct {
	CaptainID       uuid.UUID
	From            *time.Time // scheduled_start >= From
	To              *time.Time // scheduled_start < To
	Status          *string
	IncludeInactive bool
	Limit           uint64
	Offset          uint64
}

// ToDomainFilter converts the request into a domain filter
func (r *GetCaptainBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		CaptainID:       r.CaptainID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
		Limit:           r.Limit,
		Offset:          r.Offset,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response models

// PassengerResponse is one traveller on a booking
type PassengerResponse struct {
	FullName         string  `json:"full_name"`
	Email            *string `json:"email,omitempty"`
	Phone            *string `json:"phone,omitempty"`
	IsPrimaryContact bool    `json:"is_primary_contact"`
}

// BookingResponse is the booking as shown to captains and guests
type BookingResponse struct {
	ID                 uuid.UUID `json:"id"`
	CaptainID          uuid.UUID `json:"captain_id"`
	TripTypeID         uuid.UUID `json:"trip_type_id"`
	ScheduledStart     time.Time `json:"scheduled_start"`
	ScheduledEnd       time.Time `json:"scheduled_end"`
	Status             string    `json:"status"`
	PaymentStatus      string    `json:"payment_status"`
	PartySize          int       `json:"party_size"`
	GuestName          string    `json:"guest_name"`
	GuestEmail         string    `json:"guest_email"`
	GuestPhone         *string   `json:"guest_phone,omitempty"`
	SpecialRequests    *string   `json:"special_requests,omitempty"`
	ConfirmationCode   string    `json:"confirmation_code"`
	TotalPriceCents    int64     `json:"total_price_cents"`
	DepositAmountCents int64     `json:"deposit_amount_cents"`

	CancellationReason *string `json:"cancellation_reason,omitempty"`
	CancelledAt        *string `json:"cancelled_at,omitempty"` // ISO 8601

	Passengers []PassengerResponse `json:"passengers,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookingListResponse is a list of bookings
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Conversion

// FromDomainBooking converts a domain booking to its DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		CaptainID:          b.CaptainID,
		TripTypeID:         b.TripTypeID,
		ScheduledStart:     b.ScheduledStart,
		ScheduledEnd:       b.ScheduledEnd,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		PartySize:          b.PartySize,
		GuestName:          b.GuestName,
		GuestEmail:         b.GuestEmail,
		GuestPhone:         b.GuestPhone,
		SpecialRequests:    b.SpecialRequests,
		ConfirmationCode:   b.ConfirmationCode,
		TotalPriceCents:    b.TotalPriceCents,
		DepositAmountCents: b.DepositAmountCents,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// WithPassengers attaches the manifest
func (r *BookingResponse) WithPassengers(passengers []domain.Passenger) *BookingResponse {
	r.Passengers = make([]PassengerResponse, 0, len(passengers))
	for _, p := range passengers {
		r.Passengers = append(r.Passengers, PassengerResponse{
			FullName:         p.FullName,
			Email:            p.Email,
			Phone:            p.Phone,
			IsPrimaryContact: p.IsPrimaryContact,
		})
	}
	return r
}

// FromDomainBookingList converts a list of domain bookings
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus converts and validates a status string
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
