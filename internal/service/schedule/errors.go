package schedule

import "errors"

var (
	// ErrInvalidInput is returned for malformed weeks and dates
	ErrInvalidInput = errors.New("invalid input data")

	// ErrBlackoutNotFound is returned when the blackout date does not exist for the captain
	ErrBlackoutNotFound = errors.New("blackout date not found")

	// ErrBlackoutExists is returned when the date is already blacked out
	ErrBlackoutExists = errors.New("date is already blacked out")

	// ErrInternal is returned on internal service errors
	ErrInternal = errors.New("service: internal error")
)
