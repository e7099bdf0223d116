package availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ericfaux/dockslot-app-sub001/internal/domain"
)

// WindowRepository reads weekly windows
type WindowRepository interface {
	GetActiveByDay(ctx context.Context, ownerID uuid.UUID, dayOfWeek int) ([]domain.AvailabilityWindow, error)
}

// BlackoutRepository reads blackout dates
type BlackoutRepository interface {
	GetByDate(ctx context.Context, ownerID uuid.UUID, date time.Time) (*domain.BlackoutDate, error)
}

// BookingRepository reads occupying bookings; inside a transaction the rows are locked
type BookingRepository interface {
	GetOccupying(ctx context.Context, captainID uuid.UUID, from, to time.Time) ([]*domain.Booking, error)
}

// ResolverLogger is what the resolver logs through
type ResolverLogger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}
