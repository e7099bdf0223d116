package bookings

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist or the guest link is invalid
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied is returned when the booking belongs to another captain
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel is returned when the booking is already in a terminal status
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrInvalidTransition is returned when the status change is not allowed
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrSlotNotAvailable is returned when reactivating a booking would overlap another one
	ErrSlotNotAvailable = errors.New("time slot is taken by another booking")

	// ErrInvalidInput is returned for malformed input data
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service errors
	ErrInternal = errors.New("service: internal error")
)
