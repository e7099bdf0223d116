package get_captain_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/ericfaux/dockslot-app-sub001/internal/domain"
	"github.com/ericfaux/dockslot-app-sub001/internal/service/bookings/models"
)

const maxLimit = 500

// ToServiceRequest builds the service request from query parameters.
// from/to accept YYYY-MM-DD (UTC midnight) or RFC 3339.
func ToServiceRequest(captainID uuid.UUID, q url.Values) (*models.GetCaptainBookingsRequest, error) {
	req := &models.GetCaptainBookingsRequest{CaptainID: captainID}

	var err error
	if req.From, err = parseInstant(q.Get("from")); err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	if req.To, err = parseInstant(q.Get("to")); err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}

	if s := q.Get("status"); s != "" {
		req.Status = &s
	}

	if s := q.Get("includeInactive"); s != "" {
		if req.IncludeInactive, err = strconv.ParseBool(s); err != nil {
			return nil, fmt.Errorf("includeInactive: %w", err)
		}
	}

	if s := q.Get("limit"); s != "" {
		if req.Limit, err = strconv.ParseUint(s, 10, 64); err != nil {
			return nil, fmt.Errorf("limit: %w", err)
		}
		if req.Limit > maxLimit {
			req.Limit = maxLimit
		}
	}
	if s := q.Get("offset"); s != "" {
		if req.Offset, err = strconv.ParseUint(s, 10, 64); err != nil {
			return nil, fmt.Errorf("offset: %w", err)
		}
	}

	return req, nil
}

func parseInstant(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(domain.DateFormat, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
