package update_weekly_availability

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
	msgInvalidWeek        = "week must list all 7 days with HH:MM times and start before end"
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

// Handle PUT /api/v1/captain/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	captainID, ok := middleware.GetCaptainID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.UpdateWeekRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /captain/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	week, err := h.service.UpdateWeek(r.Context(), captainID, &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /captain/availability - Invalid week: captain_id=%s, error=%v", captainID, err)
			handlers.RespondBadRequest(w, msgInvalidWeek)

		default:
			h.logger.Error("PUT /captain/availability - Failed to save week: captain_id=%s, error=%v", captainID, err)
			handlers.RespondServerError(w, err, schedule.ErrInternal)
		}
		return
	}

	h.logger.Info("PUT /captain/availability - Week saved: captain_id=%s", captainID)
	handlers.RespondJSON(w, http.StatusOK, week)
}
