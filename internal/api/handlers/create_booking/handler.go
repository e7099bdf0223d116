package create_booking

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ericfaux/dockslot-app-sub001/internal/api/handlers"
	createBooking "github.com/ericfaux/dockslot-app-sub001/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidInput       = "invalid booking data"
	msgCapacity           = "party size is out of bounds"
	msgSlotNotAvailable   = "selected time slot is no longer available"
	msgCaptainNotFound    = "captain not found"
	msgTripTypeNotFound   = "trip type not found"
	msgHibernating        = "this captain is not accepting bookings right now"
	msgDateUnavailable    = "date is outside the booking window"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req createBooking.Request
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Call use case
	result, err := h.useCase.Execute(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Validation failed: %v", err)
			handlers.RespondBadRequest(w, detail(err, createBooking.ErrInvalidInput, msgInvalidInput))

		case errors.Is(err, createBooking.ErrCapacity):
			h.logger.Warn("POST /bookings - Capacity: %v", err)
			handlers.RespondCapacity(w, detail(err, createBooking.ErrCapacity, msgCapacity))

		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: captain_id=%s, date=%s, time=%s",
				req.CaptainID, req.ScheduledDate, req.ScheduledTime)
			handlers.RespondUnavailable(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrDateUnavailable):
			handlers.RespondUnavailable(w, msgDateUnavailable)

		case errors.Is(err, createBooking.ErrCaptainNotFound):
			handlers.RespondNotFound(w, msgCaptainNotFound)

		case errors.Is(err, createBooking.ErrTripTypeNotFound):
			handlers.RespondNotFound(w, msgTripTypeNotFound)

		case errors.Is(err, createBooking.ErrHibernating):
			handlers.RespondHibernating(w, msgHibernating)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: captain_id=%s, error=%v", req.CaptainID, err)
			handlers.RespondServerError(w, err, createBooking.ErrInternal)
		}
		return
	}

	// Build HTTP response
	h.logger.Info("POST /bookings - Booking created: booking_id=%s, captain_id=%s, code=%s",
		result.BookingID, req.CaptainID, result.ConfirmationCode)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// detail returns the field-level part of a wrapped sentinel error
func detail(err, sentinel error, fallback string) string {
	msg := strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
	if msg == err.Error() || msg == "" {
		return fallback
	}
	return msg
}
