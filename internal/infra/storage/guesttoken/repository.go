package guesttoken

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/ericfaux/dockslot-app-sub001/internal/domain"
	"github.com/ericfaux/dockslot-app-sub001/pkg/dbmetrics"
	"github.com/ericfaux/dockslot-app-sub001/pkg/psqlbuilder"
)

var (
	ErrTokenNotFound = errors.New("guesttoken.repository: token not found")
	ErrBuildQuery    = errors.New("guesttoken.repository: failed to build query")
	ErrExecQuery     = errors.New("guesttoken.repository: failed to execute query")
	ErrScanRow       = errors.New("guesttoken.repository: failed to scan row")
)

const table = "guest_tokens"

// Repository stores guest access tokens
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository creates a new guest token repository instance
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, token *domain.GuestToken) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("token", "booking_id", "expires_at").
		Values(token.Token, token.BookingID, token.ExpiresAt).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&token.CreatedAt); err != nil {
		return fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	return nil
}

// GetByToken returns the token row; expiry is checked by the caller
func (r *Repository) GetByToken(ctx context.Context, token string) (*domain.GuestToken, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("token", "booking_id", "expires_at", "created_at").
		From(table).
		Where(squirrel.Eq{"token": token}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByToken - build select query: %v", ErrBuildQuery, err)
	}

	var t domain.GuestToken
	err = executor.QueryRowContext(ctx, query, args...).Scan(&t.Token, &t.BookingID, &t.ExpiresAt, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByToken - scan token: %w", ErrScanRow, err)
	}

	return &t, nil
}

// DeleteExpiredBefore removes tokens that expired before cutoff and returns how many were deleted
func (r *Repository) DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Lt{"expires_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpiredBefore - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpiredBefore - execute delete: %w", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpiredBefore - get rows affected: %w", ErrExecQuery, err)
	}
	return deleted, nil
}
