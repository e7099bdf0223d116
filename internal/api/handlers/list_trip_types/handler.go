package list_trip_types

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ericfaux/dockslot-app-sub001/internal/api/handlers"
	"github.com/ericfaux/dockslot-app-sub001/internal/service/triptypes"
)

const (
	msgInvalidCaptainID = "invalid captain ID"
	msgCaptainNotFound  = "captain not found"
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

// Handle GET /api/v1/captains/{captainId}/trip-types
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	captainID, err := uuid.Parse(mux.Vars(r)["captainId"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidCaptainID)
		return
	}

	result, err := h.service.ListActive(r.Context(), captainID)
	if err != nil {
		switch {
		case errors.Is(err, triptypes.ErrCaptainNotFound):
			handlers.RespondNotFound(w, msgCaptainNotFound)

		default:
			h.logger.Error("GET /captains/{id}/trip-types - Failed to list trip types: captain_id=%s, error=%v", captainID, err)
			handlers.RespondServerError(w, err, triptypes.ErrInternal)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
