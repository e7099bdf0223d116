package triptypes

import (
	"context"

	"github.com/google/uuid"

	"github.com/ericfaux/dockslot-app-sub001/internal/domain"
)

// TripTypeRepository stores trip types
type TripTypeRepository interface {
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.TripType, error)
	ListActiveByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.TripType, error)
	CountBookings(ctx context.Context, id uuid.UUID) (int, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProfileRepository checks that the captain exists
type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.CaptainProfile, error)
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
