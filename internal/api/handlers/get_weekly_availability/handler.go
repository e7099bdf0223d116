package get_weekly_availability

import (
	"net/http"

	"github.com/ericfaux/dockslot-app-sub001/internal/api/handlers"
	"github.com/ericfaux/dockslot-app-sub001/internal/api/middleware"
	"github.com/ericfaux/dockslot-app-sub001/internal/service/schedule"
)

const msgUnauthorized = "authentication required"

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

// Handle GET /api/v1/captain/availability
// A captain who never saved a week gets the default one, persisted on first read.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	captainID, ok := middleware.GetCaptainID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	week, err := h.service.GetWeek(r.Context(), captainID)
	if err != nil {
		h.logger.Error("GET /captain/availability - Failed to get week: captain_id=%s, error=%v", captainID, err)
		handlers.RespondServerError(w, err, schedule.ErrInternal)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, week)
}
