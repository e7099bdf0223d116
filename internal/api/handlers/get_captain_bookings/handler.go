package get_captain_bookings

import (
	"errors"
	"net/http"

	"github.com/ericfaux/dockslot-app-sub001/internal/api/handlers"
	"github.com/ericfaux/dockslot-app-sub001/internal/api/middleware"
	"github.com/ericfaux/dockslot-app-sub001/internal/service/bookings"
)

const (
	msgUnauthorized  = "authentication required"
	msgInvalidParams = "invalid query parameters"
)

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

// Handle GET /api/v1/captain/bookings
// Query params (optional): from, to, status, includeInactive, limit, offset
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	captainID, ok := middleware.GetCaptainID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	serviceReq, err := ToServiceRequest(captainID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /captain/bookings - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetCaptainBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /captain/bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /captain/bookings - Failed to list bookings: captain_id=%s, error=%v", captainID, err)
			handlers.RespondServerError(w, err, bookings.ErrInternal)
		}
		return
	}

	h.logger.Info("GET /captain/bookings - Bookings retrieved: captain_id=%s, count=%d", captainID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
