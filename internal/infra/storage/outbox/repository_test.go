package outbox

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_FetchUnpublished_SkipsLocked(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	aggregate := uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta("FROM outbox_events WHERE published_at IS NULL ORDER BY created_at ASC LIMIT 10 FOR UPDATE SKIP LOCKED")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "aggregate_type", "aggregate_id", "event_type", "payload", "created_at"}).
			AddRow(id.String(), "booking", aggregate.String(), "booking.created", []byte(`{"a":1}`), time.Now()))

	events, err := NewRepository(db).FetchUnpublished(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, id, events[0].ID)
	assert.Equal(t, aggregate, events[0].AggregateID)
	assert.JSONEq(t, `{"a":1}`, string(events[0].Payload))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkPublished(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events SET published_at = NOW() WHERE id = ANY($1)")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err = NewRepository(db).MarkPublished(context.Background(), []uuid.UUID{uuid.New(), uuid.New()})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	// nothing to do, no query
	require.NoError(t, NewRepository(db).MarkPublished(context.Background(), nil))
}
