package get_availability

import "errors"

var (
	// ErrInvalidInput is returned for malformed IDs or dates
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrCaptainNotFound is returned when the captain has no profile
	ErrCaptainNotFound = errors.New("get_availability: captain not found")

	// ErrTripTypeNotFound is returned when the trip type is missing, inactive or belongs to another captain
	ErrTripTypeNotFound = errors.New("get_availability: trip type not found")

	// ErrHibernating is returned when the captain does not accept bookings
	ErrHibernating = errors.New("get_availability: captain is not accepting bookings")

	// ErrDateUnavailable is returned for past dates and dates beyond the advance window
	ErrDateUnavailable = errors.New("get_availability: date is not available for booking")

	// ErrInternal is returned on storage failures
	ErrInternal = errors.New("get_availability: internal error")
)
