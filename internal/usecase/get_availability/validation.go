package get_availability

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ericfaux/dockslot-app-sub001/internal/domain"
)

type parsedRequest struct {
	captainID  uuid.UUID
	tripTypeID uuid.UUID
	date       time.Time
}

func validateRequest(req *Request) (*parsedRequest, error) {
	captainID, err := uuid.Parse(req.CaptainID)
	if err != nil {
		return nil, fmt.Errorf("%w: captain_id must be a UUID", ErrInvalidInput)
	}

	tripTypeID, err := uuid.Parse(req.TripTypeID)
	if err != nil {
		return nil, fmt.Errorf("%w: trip_type_id must be a UUID", ErrInvalidInput)
	}

	if req.Date == "" {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	return &parsedRequest{captainID: captainID, tripTypeID: tripTypeID, date: date}, nil
}
