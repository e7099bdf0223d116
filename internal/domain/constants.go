package domain

import "github.com/ericfaux/dockslot-app-sub001/pkg/types"

const DaysInWeek = 7

// Defaults for captains who never configured their week
const (
	DefaultWindowStart types.TimeString = "06:00"
	DefaultWindowEnd   types.TimeString = "21:00"
	DefaultClosedDay                    = 1 // Monday
	DefaultTimezone                     = "America/New_York"
)

// Business validation constants
const (
	MinPartySize                = 1
	MaxGuestNameLength          = 200
	MaxSpecialRequestsLength    = 1000
	MaxCancellationReasonLength = 500
	MaxBlackoutReasonLength     = 200
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OccupyingStatuses block a booking's time range for new bookings
var OccupyingStatuses = []BookingStatus{
	StatusPendingDeposit,
	StatusConfirmed,
	StatusWeatherHold,
	StatusRescheduled,
}

// InactiveStatuses never conflict with new bookings
var InactiveStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}

// StatusStrings converts statuses for SQL IN clauses
func StatusStrings(statuses []BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
