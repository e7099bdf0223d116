package get_guest_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ericfaux/dockslot-app-sub001/internal/api/handlers"
	"github.com/ericfaux/dockslot-app-sub001/internal/service/bookings"
)

const msgNotFound = "booking not found or link has expired"

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/guest/bookings/{token}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	booking, err := h.service.GetByGuestToken(r.Context(), token)
	if err != nil {
		switch {
		// unknown, expired and malformed tokens look the same to the caller
		case errors.Is(err, bookings.ErrBookingNotFound), errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /guest/bookings/{token} - Booking not found for token")
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /guest/bookings/{token} - Failed to get booking: %v", err)
			handlers.RespondServerError(w, err, bookings.ErrInternal)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, booking)
}
