package get_availability

import "time"

// Request asks for the slots of a trip type on one date
type Request struct {
	CaptainID  string
	TripTypeID string
	Date       string // YYYY-MM-DD
}

// Slot is one candidate trip start in captain-local wall-clock time
type Slot struct {
	StartTime string // HH:MM
	EndTime   string // HH:MM
	Start     time.Time
	End       time.Time
	Available bool
}

// Response is the availability of one date
type Response struct {
	Date           string
	DayOfWeek      int
	IsBlackout     bool
	BlackoutReason *string
	Timezone       string
	Slots          []Slot
}
