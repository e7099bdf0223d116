package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/ericfaux/dockslot-app-sub001/pkg/types"
)

// AvailabilityWindow is a recurring weekly open period; one per (owner, day_of_week)
type AvailabilityWindow struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	DayOfWeek int // 0 = Sunday
	StartTime types.TimeString
	EndTime   types.TimeString
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultWeek returns the windows seeded for a captain who never configured availability
func DefaultWeek(ownerID uuid.UUID) []AvailabilityWindow {
	week := make([]AvailabilityWindow, 0, DaysInWeek)
	for day := 0; day < DaysInWeek; day++ {
		week = append(week, AvailabilityWindow{
			OwnerID:   ownerID,
			DayOfWeek: day,
			StartTime: DefaultWindowStart,
			EndTime:   DefaultWindowEnd,
			IsActive:  day != DefaultClosedDay,
		})
	}
	return week
}

// BlackoutDate closes a whole day regardless of the weekly windows
type BlackoutDate struct {
	ID           uuid.UUID
	OwnerID      uuid.UUID
	BlackoutDate time.Time // date only, UTC midnight
	Reason       *string
	CreatedAt    time.Time
}
