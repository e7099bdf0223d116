package create_booking

import "errors"

var (
	// ErrInvalidInput is returned when a guest-supplied field is malformed
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrCapacity is returned when the party size is out of bounds
	ErrCapacity = errors.New("create_booking: party size out of bounds")

	// ErrCaptainNotFound is returned when the captain has no profile
	ErrCaptainNotFound = errors.New("create_booking: captain not found")

	// ErrTripTypeNotFound is returned when the trip type is missing, inactive or belongs to another captain
	ErrTripTypeNotFound = errors.New("create_booking: trip type not found")

	// ErrHibernating is returned when the captain does not accept bookings
	ErrHibernating = errors.New("create_booking: captain is not accepting bookings")

	// ErrDateUnavailable is returned for past dates and dates beyond the advance window
	ErrDateUnavailable = errors.New("create_booking: date is not available for booking")

	// ErrSlotNotAvailable is returned when the requested start is not a free slot at commit time
	ErrSlotNotAvailable = errors.New("create_booking: selected time slot is no longer available")

	// ErrInternal is returned on storage failures
	ErrInternal = errors.New("create_booking: internal error")

	errConfirmationCodeTaken = errors.New("create_booking: confirmation code collision")
)
