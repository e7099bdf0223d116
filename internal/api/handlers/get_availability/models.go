package get_availability

import (
	"time"

	getAvailability "github.com/ericfaux/dockslot-app-sub001/internal/usecase/get_availability"
)

// SlotResponse is one bookable start; times are in the captain's timezone
type SlotResponse struct {
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	Available bool      `json:"available"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Date           string         `json:"date"`
	DayOfWeek      int            `json:"day_of_week"`
	IsBlackout     bool           `json:"is_blackout"`
	BlackoutReason *string        `json:"blackout_reason,omitempty"`
	Timezone       string         `json:"timezone"`
	TimeSlots      []SlotResponse `json:"time_slots"`
}

func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		Date:           resp.Date,
		DayOfWeek:      resp.DayOfWeek,
		IsBlackout:     resp.IsBlackout,
		BlackoutReason: resp.BlackoutReason,
		Timezone:       resp.Timezone,
		TimeSlots:      make([]SlotResponse, 0, len(resp.Slots)),
	}
	for _, s := range resp.Slots {
		out.TimeSlots = append(out.TimeSlots, SlotResponse{
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			StartsAt:  s.Start,
			EndsAt:    s.End,
			Available: s.Available,
		})
	}
	return out
}
