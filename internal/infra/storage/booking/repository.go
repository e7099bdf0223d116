package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/ericfaux/dockslot-app-sub001/internal/domain"
	"github.com/ericfaux/dockslot-app-sub001/pkg/dbmetrics"
	"github.com/ericfaux/dockslot-app-sub001/pkg/pgerr"
	"github.com/ericfaux/dockslot-app-sub001/pkg/psqlbuilder"
)

const (
	table                      = "bookings"
	constraintConfirmationCode = "bookings_confirmation_code"
)

var columns = []string{
	"id",
	"captain_id",
	"trip_type_id",
	"scheduled_start",
	"scheduled_end",
	"status",
	"payment_status",
	"party_size",
	"guest_name",
	"guest_email",
	"guest_phone",
	"special_requests",
	"confirmation_code",
	"total_price_cents",
	"deposit_amount_cents",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository stores bookings
type Repository struct {
	db DBExecutor
}

// NewRepository creates a new booking repository instance
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a booking. When called inside a transaction it joins it.
// An overlap with another occupying booking of the same captain is rejected
// by the bookings_no_overlap constraint and reported as ErrSlotNotAvailable.
// A duplicate confirmation code is reported as ErrConfirmationCodeTaken.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"id",
			"captain_id",
			"trip_type_id",
			"scheduled_start",
			"scheduled_end",
			"status",
			"payment_status",
			"party_size",
			"guest_name",
			"guest_email",
			"guest_phone",
			"special_requests",
			"confirmation_code",
			"total_price_cents",
			"deposit_amount_cents",
		).
		Values(
			booking.ID,
			booking.CaptainID,
			booking.TripTypeID,
			booking.ScheduledStart,
			booking.ScheduledEnd,
			booking.Status,
			booking.PaymentStatus,
			booking.PartySize,
			booking.GuestName,
			booking.GuestEmail,
			booking.GuestPhone,
			booking.SpecialRequests,
			booking.ConfirmationCode,
			booking.TotalPriceCents,
			booking.DepositAmountCents,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.CreatedAt, &booking.UpdatedAt)
	if err != nil {
		if pgerr.IsExclusionViolation(err) {
			return nil, ErrSlotNotAvailable
		}
		if pgerr.IsUniqueViolation(err) && pgerr.ConstraintName(err) == constraintConfirmationCode {
			return nil, ErrConfirmationCodeTaken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID returns a booking by ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetOccupying returns the captain's occupying bookings intersecting [from, to).
// Inside a transaction the rows are locked so a concurrent commit for the same
// captain waits until this one finishes.
func (r *Repository) GetOccupying(ctx context.Context, captainID uuid.UUID, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"captain_id": captainID}).
		Where(squirrel.Eq{"status": domain.StatusStrings(domain.OccupyingStatuses)}).
		Where(squirrel.Lt{"scheduled_start": to}).
		Where(squirrel.Gt{"scheduled_end": from}).
		OrderBy("scheduled_start ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOccupying - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOccupying - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByCaptainWithFilter lists a captain's bookings, newest trip first
func (r *Repository) GetByCaptainWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"captain_id": filter.CaptainID})

	if filter.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"scheduled_start": *filter.From})
	}
	if filter.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"scheduled_start": *filter.To})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusStrings(domain.InactiveStatuses)})
	}

	selectBuilder = selectBuilder.OrderBy("scheduled_start DESC")
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(filter.Offset)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCaptainWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCaptainWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus sets a new status. Moving a booking back to an occupying status
// may hit the overlap constraint, reported as ErrSlotNotAvailable.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if pgerr.IsExclusionViolation(err) {
			return ErrSlotNotAvailable
		}
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	return requireAffected(result, "UpdateStatus")
}

// Cancel marks the booking cancelled with a reason
func (r *Repository) Cancel(ctx context.Context, id uuid.UUID, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %w", ErrExecQuery, err)
	}

	return requireAffected(result, "Cancel")
}

func requireAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var cancelledAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.CaptainID,
		&booking.TripTypeID,
		&booking.ScheduledStart,
		&booking.ScheduledEnd,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.PartySize,
		&booking.GuestName,
		&booking.GuestEmail,
		&booking.GuestPhone,
		&booking.SpecialRequests,
		&booking.ConfirmationCode,
		&booking.TotalPriceCents,
		&booking.DepositAmountCents,
		&booking.CancellationReason,
		&cancelledAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if cancelledAt.Valid {
		t := cancelledAt.Time
		booking.CancelledAt = &t
	}

	return &booking, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}
