package blackout

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

var (
	ErrBlackoutNotFound  = errors.New("blackout.repository: blackout date not found")
	ErrDuplicateBlackout = errors.New("blackout.repository: date already blacked out")
	ErrBuildQuery        = errors.New("blackout.repository: failed to build query")
	ErrExecQuery         = errors.New("blackout.repository: failed to execute query")
	ErrScanRow           = errors.New("blackout.repository: failed to scan row")
)

const table = "blackout_dates"

var columns = []string{"id", "owner_id", "blackout_date", "reason", "created_at"}

// Repository stores blackout dates
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a new blackout date repository instance
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDate returns the blackout for the calendar date, if any
func (r *Repository) GetByDate(ctx context.Context, ownerID uuid.UUID, date time.Time) (*domain.BlackoutDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"owner_id": ownerID, "blackout_date": date.Format(domain.DateFormat)}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	var b domain.BlackoutDate
	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &b.OwnerID, &b.BlackoutDate, &b.Reason, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBlackoutNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - scan blackout: %w", ErrScanRow, err)
	}

	return &b, nil
}

// List returns the owner's blackout dates on or after from (all when from is nil)
func (r *Repository) List(ctx context.Context, ownerID uuid.UUID, from *time.Time) ([]domain.BlackoutDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"owner_id": ownerID})
	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"blackout_date": from.Format(domain.DateFormat)})
	}

	query, args, err := selectBuilder.OrderBy("blackout_date ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.BlackoutDate, 0)
	for rows.Next() {
		var b domain.BlackoutDate
		if err := rows.Scan(&b.ID, &b.OwnerID, &b.BlackoutDate, &b.Reason, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %w", ErrScanRow, err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return result, nil
}

// Create inserts a blackout date; one per owner and date
func (r *Repository) Create(ctx context.Context, b *domain.BlackoutDate) (*domain.BlackoutDate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns("id", "owner_id", "blackout_date", "reason").
		Values(b.ID, b.OwnerID, b.BlackoutDate.Format(domain.DateFormat), b.Reason).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&b.CreatedAt); err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, ErrDuplicateBlackout
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return b, nil
}

// Delete removes a blackout date owned by ownerID
func (r *Repository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBlackoutNotFound
	}

	return nil
}
