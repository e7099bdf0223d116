package auditlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ericfaux/dockslot-app-sub001/internal/domain"
	"github.com/ericfaux/dockslot-app-sub001/pkg/dbmetrics"
	"github.com/ericfaux/dockslot-app-sub001/pkg/psqlbuilder"
)

var (
	ErrBuildQuery = errors.New("auditlog.repository: failed to build query")
	ErrExecQuery  = errors.New("auditlog.repository: failed to execute query")
)

// Repository appends booking audit entries
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a new audit log repository instance
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, entry *domain.AuditLogEntry) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	details, err := json.Marshal(entry.Details)
	if err != nil {
		return fmt.Errorf("%w: Create - marshal details: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("booking_logs").
		Columns("id", "booking_id", "captain_id", "action", "details").
		Values(entry.ID, entry.BookingID, entry.CaptainID, string(entry.Action), details).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	return nil
}
