package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/ericfaux/dockslot-app-sub001/internal/domain"
	"github.com/ericfaux/dockslot-app-sub001/pkg/dbmetrics"
	"github.com/ericfaux/dockslot-app-sub001/pkg/psqlbuilder"
)

var (
	ErrProfileNotFound = errors.New("profile.repository: profile not found")
	ErrBuildQuery      = errors.New("profile.repository: failed to build query")
	ErrScanRow         = errors.New("profile.repository: failed to scan row")
)

// Repository reads captain profiles
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a new captain profile repository instance
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID returns the captain profile
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.CaptainProfile, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"business_name",
		"timezone",
		"booking_buffer_minutes",
		"advance_booking_days",
		"is_hibernating",
		"created_at",
		"updated_at",
	).
		From("captain_profiles").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.CaptainProfile
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.BusinessName,
		&p.Timezone,
		&p.BookingBufferMinutes,
		&p.AdvanceBookingDays,
		&p.IsHibernating,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan profile: %w", ErrScanRow, err)
	}

	return &p, nil
}
