package get_availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ericfaux/dockslot-app-sub001/internal/domain"
)

// ProfileRepository loads the captain profile
type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CaptainProfile, error)
}

// TripTypeRepository loads the requested trip type
type TripTypeRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TripType, error)
}

// DayResolver computes slots for one date
type DayResolver interface {
	Day(ctx context.Context, profile *domain.CaptainProfile, tripType *domain.TripType, date time.Time, now time.Time) (*domain.DayAvailability, error)
}

// Metrics counts availability lookups by result
type Metrics interface {
	ObserveAvailability(result string)
}

// TimeProvider returns the current time (replaced in tests)
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging subset the use case needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production clock
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
