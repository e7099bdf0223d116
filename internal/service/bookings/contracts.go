package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ericfaux/dockslot-app-sub001/internal/domain"
)

// BookingRepository interface of the bookings repository
type BookingRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	GetByCaptainWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error
	Cancel(ctx context.Context, id uuid.UUID, reason string) error
}

// PassengerRepository reads the passenger manifest
type PassengerRepository interface {
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]domain.Passenger, error)
}

// GuestTokenRepository resolves guest management links
type GuestTokenRepository interface {
	GetByToken(ctx context.Context, token string) (*domain.GuestToken, error)
}

// AuditLogRepository appends to the booking log
type AuditLogRepository interface {
	Create(ctx context.Context, entry *domain.AuditLogEntry) error
}

// OutboxRepository records events for the publisher
type OutboxRepository interface {
	Insert(ctx context.Context, evt *domain.OutboxEvent) error
}

// TransactionManager interface for transaction management
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider returns the current time (replaced in tests)
type TimeProvider interface {
	Now() time.Time
}

// Logger interface for logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realTime struct{}

func (realTime) Now() time.Time { return time.Now() }
