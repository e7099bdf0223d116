package get_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ericfaux/dockslot-app-sub001/internal/api/handlers"
	getAvailability "github.com/ericfaux/dockslot-app-sub001/internal/usecase/get_availability"
)

const (
	msgMissingDate      = "date query parameter is required (YYYY-MM-DD)"
	msgInvalidInput     = "invalid captain ID, trip type ID or date"
	msgCaptainNotFound  = "captain not found"
	msgTripTypeNotFound = "trip type not found"
	msgHibernating      = "this captain is not accepting bookings right now"
	msgDateUnavailable  = "date is outside the booking window"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/captains/{captainId}/trip-types/{tripTypeId}/availability?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	// date is a required query parameter
	date := r.URL.Query().Get("date")
	if date == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	req := &getAvailability.Request{
		CaptainID:  vars["captainId"],
		TripTypeID: vars["tripTypeId"],
		Date:       date,
	}

	// Call use case
	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getAvailability.ErrCaptainNotFound):
			handlers.RespondNotFound(w, msgCaptainNotFound)

		case errors.Is(err, getAvailability.ErrTripTypeNotFound):
			handlers.RespondNotFound(w, msgTripTypeNotFound)

		case errors.Is(err, getAvailability.ErrHibernating):
			handlers.RespondHibernating(w, msgHibernating)

		case errors.Is(err, getAvailability.ErrDateUnavailable):
			handlers.RespondUnavailable(w, msgDateUnavailable)

		default:
			h.logger.Error("GET /availability - Failed to compute slots: captain_id=%s, trip_type_id=%s, date=%s, error=%v",
				req.CaptainID, req.TripTypeID, req.Date, err)
			handlers.RespondServerError(w, err, getAvailability.ErrInternal)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
