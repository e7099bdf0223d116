package availability

import "errors"

var (
	// ErrHibernating is returned when the captain does not accept bookings
	ErrHibernating = errors.New("availability: captain is hibernating")

	// ErrDateOutOfRange is returned for dates before today or beyond the advance window
	ErrDateOutOfRange = errors.New("availability: date outside bookable range")

	// ErrLoad is returned when calendar data cannot be read
	ErrLoad = errors.New("availability: failed to load calendar data")
)
