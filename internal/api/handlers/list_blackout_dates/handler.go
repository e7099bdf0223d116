package list_blackout_dates

import (
	"net/http"
	"time"

	"github.com/ericfaux/dockslot-app-sub001/internal/api/handlers"
	"github.com/ericfaux/dockslot-app-sub001/internal/api/middleware"
	"github.com/ericfaux/dockslot-app-sub001/internal/domain"
	"github.com/ericfaux/dockslot-app-sub001/internal/service/schedule"
)

const (
	msgUnauthorized = "authentication required"
	msgInvalidFrom  = "from must be YYYY-MM-DD"
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

// Handle GET /api/v1/captain/blackout-dates?from=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	captainID, ok := middleware.GetCaptainID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var from *time.Time
	if s := r.URL.Query().Get("from"); s != "" {
		t, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidFrom)
			return
		}
		from = &t
	}

	result, err := h.service.ListBlackouts(r.Context(), captainID, from)
	if err != nil {
		h.logger.Error("GET /captain/blackout-dates - Failed to list: captain_id=%s, error=%v", captainID, err)
		handlers.RespondServerError(w, err, schedule.ErrInternal)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
