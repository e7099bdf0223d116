package triptype

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
	ErrTripTypeNotFound = errors.New("triptype.repository: trip type not found")
	ErrBuildQuery       = errors.New("triptype.repository: failed to build query")
	ErrExecQuery        = errors.New("triptype.repository: failed to execute query")
	ErrScanRow          = errors.New("triptype.repository: failed to scan row")
)

const table = "trip_types"

var columns = []string{
	"id",
	"owner_id",
	"name",
	"description",
	"duration_hours",
	"price_total",
	"deposit_amount",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository stores trip types
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a new trip type repository instance
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID returns a trip type regardless of its active flag
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TripType, error) {
	return r.get(ctx, "GetByID", id, false)
}

// GetByIDForUpdate is GetByID holding a row lock until the transaction ends.
// Concurrent booking inserts referencing the row wait for it.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.TripType, error) {
	return r.get(ctx, "GetByIDForUpdate", id, true)
}

func (r *Repository) get(ctx context.Context, op string, id uuid.UUID, lock bool) (*domain.TripType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id})
	if lock && dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	tt, err := scanTripType(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTripTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan trip type: %w", ErrScanRow, op, err)
	}

	return tt, nil
}

// ListActiveByOwner returns the trip types shown on the public booking page
func (r *Repository) ListActiveByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.TripType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"owner_id": ownerID, "is_active": true}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByOwner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActiveByOwner - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.TripType, 0)
	for rows.Next() {
		tt, err := scanTripType(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActiveByOwner - scan row: %w", ErrScanRow, err)
		}
		result = append(result, tt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActiveByOwner - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// CountBookings counts bookings of any status referencing the trip type
func (r *Repository) CountBookings(ctx context.Context, id uuid.UUID) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"trip_type_id": id}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountBookings - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountBookings - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// Deactivate soft-deletes the trip type
func (r *Repository) Deactivate(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffecting(ctx, executor, "Deactivate", query, args)
}

// Delete hard-deletes the trip type; callers must check CountBookings first
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffecting(ctx, executor, "Delete", query, args)
}

func (r *Repository) execAffecting(ctx context.Context, executor dbmetrics.DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %w", ErrExecQuery, op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrTripTypeNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTripType(row rowScanner) (*domain.TripType, error) {
	var tt domain.TripType
	err := row.Scan(
		&tt.ID,
		&tt.OwnerID,
		&tt.Name,
		&tt.Description,
		&tt.DurationHours,
		&tt.PriceTotal,
		&tt.DepositAmount,
		&tt.IsActive,
		&tt.CreatedAt,
		&tt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tt, nil
}
