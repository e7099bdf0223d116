package availability

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/ericfaux/dockslot-app-sub001/internal/domain"
	"github.com/ericfaux/dockslot-app-sub001/pkg/dbmetrics"
	"github.com/ericfaux/dockslot-app-sub001/pkg/psqlbuilder"
)

const table = "availability_windows"

// upsertSuffix makes the weekly write idempotent on (owner_id, day_of_week)
const upsertSuffix = "ON CONFLICT (owner_id, day_of_week) DO UPDATE SET " +
	"start_time = EXCLUDED.start_time, " +
	"end_time = EXCLUDED.end_time, " +
	"is_active = EXCLUDED.is_active, " +
	"updated_at = NOW()"

var columns = []string{
	"id",
	"owner_id",
	"day_of_week",
	"start_time",
	"end_time",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository stores weekly availability windows
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a new availability window repository instance
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveByDay returns the owner's active windows for a weekday (0 = Sunday)
func (r *Repository) GetActiveByDay(ctx context.Context, ownerID uuid.UUID, dayOfWeek int) ([]domain.AvailabilityWindow, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"owner_id": ownerID, "day_of_week": dayOfWeek, "is_active": true}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByDay - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "GetActiveByDay", query, args)
}

// GetWeek returns all stored windows of the owner ordered by weekday
func (r *Repository) GetWeek(ctx context.Context, ownerID uuid.UUID) ([]domain.AvailabilityWindow, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("day_of_week ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWeek - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "GetWeek", query, args)
}

// UpsertWeek writes all given windows in one statement
func (r *Repository) UpsertWeek(ctx context.Context, ownerID uuid.UUID, windows []domain.AvailabilityWindow) error {
	return r.insert(ctx, "UpsertWeek", ownerID, windows, upsertSuffix)
}

// EnsureDefaultWeek seeds the default week, leaving existing days untouched
func (r *Repository) EnsureDefaultWeek(ctx context.Context, ownerID uuid.UUID) error {
	return r.insert(ctx, "EnsureDefaultWeek", ownerID, domain.DefaultWeek(ownerID),
		"ON CONFLICT (owner_id, day_of_week) DO NOTHING")
}

func (r *Repository) insert(ctx context.Context, op string, ownerID uuid.UUID, windows []domain.AvailabilityWindow, suffix string) error {
	if len(windows) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert(table).
		Columns("id", "owner_id", "day_of_week", "start_time", "end_time", "is_active")
	for _, w := range windows {
		id := w.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		insertBuilder = insertBuilder.Values(id, ownerID, w.DayOfWeek, w.StartTime, w.EndTime, w.IsActive)
	}

	query, args, err := insertBuilder.Suffix(suffix).ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build insert query: %v", ErrBuildQuery, op, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %s - execute insert: %w", ErrExecQuery, op, err)
	}
	return nil
}

func (r *Repository) query(ctx context.Context, op, query string, args []interface{}) ([]domain.AvailabilityWindow, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	return scanWindows(rows, op)
}

func scanWindows(rows *sql.Rows, op string) ([]domain.AvailabilityWindow, error) {
	windows := make([]domain.AvailabilityWindow, 0, domain.DaysInWeek)

	for rows.Next() {
		var w domain.AvailabilityWindow
		if err := rows.Scan(
			&w.ID,
			&w.OwnerID,
			&w.DayOfWeek,
			&w.StartTime,
			&w.EndTime,
			&w.IsActive,
			&w.CreatedAt,
			&w.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		windows = append(windows, w)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return windows, nil
}
