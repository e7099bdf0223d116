package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ericfaux/dockslot-app-sub001/internal/domain"
)

// WindowRepository stores weekly availability windows
type WindowRepository interface {
	GetWeek(ctx context.Context, ownerID uuid.UUID) ([]domain.AvailabilityWindow, error)
	UpsertWeek(ctx context.Context, ownerID uuid.UUID, windows []domain.AvailabilityWindow) error
	EnsureDefaultWeek(ctx context.Context, ownerID uuid.UUID) error
}

// BlackoutRepository stores blackout dates
type BlackoutRepository interface {
	List(ctx context.Context, ownerID uuid.UUID, from *time.Time) ([]domain.BlackoutDate, error)
	Create(ctx context.Context, b *domain.BlackoutDate) (*domain.BlackoutDate, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

// TransactionManager interface for transaction management
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger interface for logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
