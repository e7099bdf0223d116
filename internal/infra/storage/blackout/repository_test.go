package blackout

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfaux/dockslot-app-sub001/internal/domain"
	"github.com/ericfaux/dockslot-app-sub001/pkg/ptr"
)

func TestRepository_GetByDate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	owner := uuid.New()
	date := time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM blackout_dates WHERE blackout_date = $1 AND owner_id = $2 LIMIT 1")).
		WithArgs("2025-07-04", owner).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(uuid.New().String(), owner.String(), date, "Holiday", time.Now()))

	b, err := NewRepository(db).GetByDate(context.Background(), owner, date)
	require.NoError(t, err)
	require.NotNil(t, b.Reason)
	assert.Equal(t, "Holiday", *b.Reason)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByDate_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM blackout_dates").WillReturnRows(sqlmock.NewRows(columns))

	_, err = NewRepository(db).GetByDate(context.Background(), uuid.New(), time.Now())
	assert.ErrorIs(t, err, ErrBlackoutNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_Duplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO blackout_dates")).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err = NewRepository(db).Create(context.Background(), &domain.BlackoutDate{
		OwnerID:      uuid.New(),
		BlackoutDate: time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC),
		Reason:       ptr.Ptr("Christmas"),
	})
	assert.ErrorIs(t, err, ErrDuplicateBlackout)
	assert.NoError(t, mock.ExpectationsWereMet())
}
