package passenger

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/ericfaux/dockslot-app-sub001/internal/domain"
	"github.com/ericfaux/dockslot-app-sub001/pkg/dbmetrics"
	"github.com/ericfaux/dockslot-app-sub001/pkg/psqlbuilder"
)

var (
	ErrBuildQuery = errors.New("passenger.repository: failed to build query")
	ErrExecQuery  = errors.New("passenger.repository: failed to execute query")
	ErrScanRow    = errors.New("passenger.repository: failed to scan row")
)

const table = "passengers"

// Repository stores passengers of a booking
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a new passenger repository instance
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch inserts all passengers in one statement
func (r *Repository) CreateBatch(ctx context.Context, passengers []domain.Passenger) error {
	if len(passengers) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert(table).
		Columns("id", "booking_id", "full_name", "email", "phone", "is_primary_contact")
	for i := range passengers {
		p := &passengers[i]
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		insertBuilder = insertBuilder.Values(p.ID, p.BookingID, p.FullName, p.Email, p.Phone, p.IsPrimaryContact)
	}

	query, args, err := insertBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateBatch - execute insert: %w", ErrExecQuery, err)
	}
	return nil
}

// ListByBooking returns passengers with the primary contact first
func (r *Repository) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]domain.Passenger, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "booking_id", "full_name", "email", "phone", "is_primary_contact", "created_at").
		From(table).
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("is_primary_contact DESC", "created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.Passenger, 0)
	for rows.Next() {
		var p domain.Passenger
		if err := rows.Scan(&p.ID, &p.BookingID, &p.FullName, &p.Email, &p.Phone, &p.IsPrimaryContact, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListByBooking - scan row: %w", ErrScanRow, err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}
