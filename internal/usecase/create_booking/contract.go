package create_booking

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

// TripTypeRepository loads the booked trip type
type TripTypeRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TripType, error)
}

// DayResolver recomputes the slots of the requested date; inside the
// transaction it locks the captain's occupying bookings for that day
type DayResolver interface {
	Day(ctx context.Context, profile *domain.CaptainProfile, tripType *domain.TripType, date time.Time, now time.Time) (*domain.DayAvailability, error)
}

// BookingRepository interface of the bookings repository
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// GuestTokenRepository stores the guest management token
type GuestTokenRepository interface {
	Create(ctx context.Context, token *domain.GuestToken) error
}

// PassengerRepository stores the passenger manifest
type PassengerRepository interface {
	CreateBatch(ctx context.Context, passengers []domain.Passenger) error
}

// AuditLogRepository appends to the booking log
type AuditLogRepository interface {
	Create(ctx context.Context, entry *domain.AuditLogEntry) error
}

// OutboxRepository records events for the publisher
type OutboxRepository interface {
	Insert(ctx context.Context, evt *domain.OutboxEvent) error
}

// CodeGenerator produces confirmation codes and guest tokens
type CodeGenerator interface {
	ConfirmationCode() (string, error)
	GuestToken() (string, error)
}

// TransactionManager runs fn in a serializable transaction, retrying serialization failures
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics counts commits and conflicts
type Metrics interface {
	BookingCreated()
	BookingConflict(stage string)
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
