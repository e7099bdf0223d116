package create_blackout_date

import (
	"errors"
	"net/http"

	"github.com/ericfaux/dockslot-app-sub001/internal/api/handlers"
	"github.com/ericfaux/dockslot-app-sub001/internal/api/middleware"
	"github.com/ericfaux/dockslot-app-sub001/internal/service/schedule"
	"github.com/ericfaux/dockslot-app-sub001/internal/service/schedule/models"
)

const (
	msgUnauthorized       = "authentication required"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidBlackout    = "date must be YYYY-MM-DD and reason at most 200 characters"
	msgAlreadyExists      = "date is already blacked out"
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

// Handle POST /api/v1/captain/blackout-dates
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	captainID, ok := middleware.GetCaptainID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.CreateBlackoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /captain/blackout-dates - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	blackout, err := h.service.CreateBlackout(r.Context(), captainID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidBlackout)

		case errors.Is(err, schedule.ErrBlackoutExists):
			handlers.RespondBadRequest(w, msgAlreadyExists)

		default:
			h.logger.Error("POST /captain/blackout-dates - Failed to create: captain_id=%s, error=%v", captainID, err)
			handlers.RespondServerError(w, err, schedule.ErrInternal)
		}
		return
	}

	h.logger.Info("POST /captain/blackout-dates - Created: captain_id=%s, date=%s", captainID, blackout.Date)
	handlers.RespondJSON(w, http.StatusCreated, blackout)
}
