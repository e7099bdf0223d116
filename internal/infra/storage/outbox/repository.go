package outbox

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ericfaux/dockslot-app-sub001/internal/domain"
	"github.com/ericfaux/dockslot-app-sub001/pkg/dbmetrics"
	"github.com/ericfaux/dockslot-app-sub001/pkg/psqlbuilder"
)

var (
	ErrBuildQuery = errors.New("outbox.repository: failed to build query")
	ErrExecQuery  = errors.New("outbox.repository: failed to execute query")
	ErrScanRow    = errors.New("outbox.repository: failed to scan row")
)

const table = "outbox_events"

// Repository stores events waiting to be published
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a new outbox repository instance
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Insert writes an event; call it inside the transaction that made the change
func (r *Repository) Insert(ctx context.Context, evt *domain.OutboxEvent) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if evt.ID == uuid.Nil {
		evt.ID = uuid.New()
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns("id", "aggregate_type", "aggregate_id", "event_type", "payload").
		Values(evt.ID, evt.AggregateType, evt.AggregateID, evt.EventType, evt.Payload).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Insert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Insert - execute insert: %w", ErrExecQuery, err)
	}
	return nil
}

// FetchUnpublished locks up to limit pending events; concurrent publishers skip locked rows
func (r *Repository) FetchUnpublished(ctx context.Context, limit uint64) ([]domain.OutboxEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "aggregate_type", "aggregate_id", "event_type", "payload", "created_at").
		From(table).
		Where(squirrel.Eq{"published_at": nil}).
		OrderBy("created_at ASC").
		Limit(limit).
		Suffix("FOR UPDATE SKIP LOCKED").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FetchUnpublished - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FetchUnpublished - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	events := make([]domain.OutboxEvent, 0)
	for rows.Next() {
		var e domain.OutboxEvent
		if err := rows.Scan(&e.ID, &e.AggregateType, &e.AggregateID, &e.EventType, &e.Payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: FetchUnpublished - scan row: %w", ErrScanRow, err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FetchUnpublished - rows error: %w", ErrScanRow, err)
	}

	return events, nil
}

// MarkPublished stamps published_at on the given events
func (r *Repository) MarkPublished(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = id.String()
	}

	query, args, err := psqlbuilder.Update(table).
		Set("published_at", squirrel.Expr("NOW()")).
		Where(squirrel.Expr("id = ANY(?)", pq.StringArray(strIDs))).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkPublished - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkPublished - execute update: %w", ErrExecQuery, err)
	}
	return nil
}
