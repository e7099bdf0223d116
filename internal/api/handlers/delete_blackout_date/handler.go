package delete_blackout_date

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/ericfaux/dockslot-app-sub001/internal/api/handlers"
	"github.com/ericfaux/dockslot-app-sub001/internal/api/middleware"
	"github.com/ericfaux/dockslot-app-sub001/internal/service/schedule"
)

const (
	msgUnauthorized      = "authentication required"
	msgInvalidBlackoutID = "invalid blackout date ID"
	msgNotFound          = "blackout date not found"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/captain/blackout-dates/{blackoutId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	captainID, ok := middleware.GetCaptainID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	blackoutID, err := uuid.Parse(mux.Vars(r)["blackoutId"])
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBlackoutID)
		return
	}

	if err := h.service.DeleteBlackout(r.Context(), captainID, blackoutID); err != nil {
		switch {
		case errors.Is(err, schedule.ErrBlackoutNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /captain/blackout-dates/{id} - Failed to delete: blackout_id=%s, error=%v", blackoutID, err)
			handlers.RespondServerError(w, err, schedule.ErrInternal)
		}
		return
	}

	h.logger.Info("DELETE /captain/blackout-dates/{id} - Deleted: blackout_id=%s, captain_id=%s", blackoutID, captainID)
	w.WriteHeader(http.StatusNoContent)
}
