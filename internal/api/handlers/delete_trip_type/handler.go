package delete_trip_type

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ericfaux/dockslot-app-sub001/internal/api/handlers"
	"github.com/ericfaux/dockslot-app-sub001/internal/api/middleware"
	"github.com/ericfaux/dockslot-app-sub001/internal/service/triptypes"
)

const (
	msgUnauthorized      = "authentication required"
	msgInvalidTripTypeID = "invalid trip type ID"
	msgNotFound          = "trip type not found"
	msgForbidden         = "access denied"
)

type Handler struct {
	service TripTypeService
	logger  Logger
}

func NewHandler(service TripTypeService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/captain/trip-types/{tripTypeId}
// Trip types with bookings are deactivated instead of deleted.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	captainID, ok := middleware.GetCaptainID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	tripTypeID, err := uuid.Parse(mux.Vars(r)["tripTypeId"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidTripTypeID)
		return
	}

	result, err := h.service.Delete(r.Context(), captainID, tripTypeID)
	if err != nil {
		switch {
		case errors.Is(err, triptypes.ErrTripTypeNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, triptypes.ErrAccessDenied):
			h.logger.Warn("DELETE /captain/trip-types/{id} - Access denied: trip_type_id=%s, captain_id=%s", tripTypeID, captainID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /captain/trip-types/{id} - Failed to delete: trip_type_id=%s, error=%v", tripTypeID, err)
			handlers.RespondServerError(w, err, triptypes.ErrInternal)
		}
		return
	}

	h.logger.Info("DELETE /captain/trip-types/{id} - Done: trip_type_id=%s, deactivated=%t", tripTypeID, result.Deactivated)
	handlers.RespondJSON(w, http.StatusOK, result)
}
