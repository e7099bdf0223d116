package triptypes

import "errors"

var (
	// ErrCaptainNotFound is returned when the captain has no profile
	ErrCaptainNotFound = errors.New("captain not found")

	// ErrTripTypeNotFound is returned when the trip type does not exist
	ErrTripTypeNotFound = errors.New("trip type not found")

	// ErrAccessDenied is returned when the trip type belongs to another captain
	ErrAccessDenied = errors.New("access denied")

	// ErrInternal is returned on internal service errors
	ErrInternal = errors.New("service: internal error")
)
