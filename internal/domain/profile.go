package domain

import (
	"time"

	"github.com/google/uuid"
)

// CaptainProfile holds the settings the slot engine needs from a captain
type CaptainProfile struct {
	ID                   uuid.UUID
	BusinessName         string
	Timezone             string // IANA name
	BookingBufferMinutes int
	AdvanceBookingDays   int
	IsHibernating        bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Location resolves the captain's timezone, falling back to DefaultTimezone when it is empty or unknown
func (p *CaptainProfile) Location() *time.Location {
	if p.Timezone != "" {
		if loc, err := time.LoadLocation(p.Timezone); err == nil {
			return loc
		}
	}
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Buffer returns the minimum lead time before a trip may start
func (p *CaptainProfile) Buffer() time.Duration {
	return time.Duration(p.BookingBufferMinutes) * time.Minute
}
