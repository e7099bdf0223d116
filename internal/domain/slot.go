package domain

import "time"

// TimeSlot is a candidate trip start on a given date
type TimeSlot struct {
	Start     time.Time
	End       time.Time
	Available bool
}

// DayAvailability is the slot list for one captain, trip type and date
type DayAvailability struct {
	Date           time.Time
	DayOfWeek      int
	IsBlackout     bool
	BlackoutReason *string
	Slots          []TimeSlot
}
