package booking

import "errors"

var (
	// ErrBookingNotFound is returned when no booking matches the lookup
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotNotAvailable is returned when the overlap exclusion constraint rejects an insert
	ErrSlotNotAvailable = errors.New("booking.repository: slot not available")

	// ErrConfirmationCodeTaken is returned when another booking already holds the confirmation code
	ErrConfirmationCodeTaken = errors.New("booking.repository: confirmation code already taken")

	// ErrBuildQuery is returned when a SQL query cannot be built
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery is returned when a SQL query fails
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow is returned when a result row cannot be scanned
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
