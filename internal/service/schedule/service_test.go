package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ericfaux/dockslot-app-sub001/internal/domain"
	blackoutRepo "github.com/ericfaux/dockslot-app-sub001/internal/infra/storage/blackout"
	"github.com/ericfaux/dockslot-app-sub001/internal/service/schedule/models"
	"github.com/ericfaux/dockslot-app-sub001/pkg/ptr"
)

// memWindows keeps one row per (owner, day) like the unique key does
type memWindows struct {
	rows    map[uuid.UUID]map[int]domain.AvailabilityWindow
	upserts int
}

func newMemWindows() *memWindows {
	return &memWindows{rows: map[uuid.UUID]map[int]domain.AvailabilityWindow{}}
}

func (m *memWindows) GetWeek(_ context.Context, ownerID uuid.UUID) ([]domain.AvailabilityWindow, error) {
	out := make([]domain.AvailabilityWindow, 0)
	for day := 0; day < domain.DaysInWeek; day++ {
		if w, ok := m.rows[ownerID][day]; ok {
			out = append(out, w)
		}
	}
	return out, nil
}

func (m *memWindows) put(ownerID uuid.UUID, windows []domain.AvailabilityWindow, overwrite bool) {
	if m.rows[ownerID] == nil {
		m.rows[ownerID] = map[int]domain.AvailabilityWindow{}
	}
	for _, w := range windows {
		if _, exists := m.rows[ownerID][w.DayOfWeek]; exists && !overwrite {
			continue
		}
		w.OwnerID = ownerID
		m.rows[ownerID][w.DayOfWeek] = w
	}
}

func (m *memWindows) UpsertWeek(_ context.Context, ownerID uuid.UUID, windows []domain.AvailabilityWindow) error {
	m.upserts++
	m.put(ownerID, windows, true)
	return nil
}

func (m *memWindows) EnsureDefaultWeek(_ context.Context, ownerID uuid.UUID) error {
	m.put(ownerID, domain.DefaultWeek(ownerID), false)
	return nil
}

type mockBlackouts struct{ mock.Mock }

func (m *mockBlackouts) List(ctx context.Context, ownerID uuid.UUID, from *time.Time) ([]domain.BlackoutDate, error) {
	args := m.Called(ctx, ownerID, from)
	b, _ := args.Get(0).([]domain.BlackoutDate)
	return b, args.Error(1)
}

func (m *mockBlackouts) Create(ctx context.Context, b *domain.BlackoutDate) (*domain.BlackoutDate, error) {
	args := m.Called(ctx, b)
	created, _ := args.Get(0).(*domain.BlackoutDate)
	return created, args.Error(1)
}

func (m *mockBlackouts) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return m.Called(ctx, ownerID, id).Error(0)
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func week(start, end string) *models.UpdateWeekRequest {
	req := &models.UpdateWeekRequest{}
	for day := 0; day < 7; day++ {
		req.Days = append(req.Days, models.DayInput{DayOfWeek: day, StartTime: start, EndTime: end, IsActive: day != 0})
	}
	return req
}

func TestGetWeek_SeedsDefaults(t *testing.T) {
	windows := newMemWindows()
	svc := NewService(windows, &mockBlackouts{}, inlineTx{}, nopLogger{})
	captainID := uuid.New()

	resp, err := svc.GetWeek(context.Background(), captainID)
	require.NoError(t, err)

	require.Len(t, resp.Days, 7)
	for _, d := range resp.Days {
		assert.Equal(t, "06:00", d.StartTime)
		assert.Equal(t, "21:00", d.EndTime)
		assert.Equal(t, d.DayOfWeek != 1, d.IsActive, "day %d", d.DayOfWeek)
	}
}

func TestUpdateWeek_Idempotent(t *testing.T) {
	windows := newMemWindows()
	svc := NewService(windows, &mockBlackouts{}, inlineTx{}, nopLogger{})
	captainID := uuid.New()

	first, err := svc.UpdateWeek(context.Background(), captainID, week("07:00", "19:30"))
	require.NoError(t, err)
	second, err := svc.UpdateWeek(context.Background(), captainID, week("07:00", "19:30"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, windows.rows[captainID], 7)
	assert.Equal(t, 2, windows.upserts)
	assert.False(t, first.Days[0].IsActive)
	assert.Equal(t, "19:30", first.Days[3].EndTime)
}

func TestUpdateWeek_Rejects(t *testing.T) {
	partial := week("06:00", "21:00")
	partial.Days = partial.Days[:6]

	duplicate := week("06:00", "21:00")
	duplicate.Days[6].DayOfWeek = 5

	outOfRange := week("06:00", "21:00")
	outOfRange.Days[0].DayOfWeek = 7

	tests := map[string]*models.UpdateWeekRequest{
		"six days":         partial,
		"duplicate day":    duplicate,
		"day out of range": outOfRange,
		"start after end":  week("21:00", "06:00"),
		"empty window":     week("08:00", "08:00"),
		"bad time":         week("6am", "21:00"),
	}

	for name, req := range tests {
		t.Run(name, func(t *testing.T) {
			windows := newMemWindows()
			svc := NewService(windows, &mockBlackouts{}, inlineTx{}, nopLogger{})

			_, err := svc.UpdateWeek(context.Background(), uuid.New(), req)

			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Zero(t, windows.upserts, "partial weeks are never written")
		})
	}
}

func TestCreateBlackout(t *testing.T) {
	blackouts := &mockBlackouts{}
	svc := NewService(newMemWindows(), blackouts, inlineTx{}, nopLogger{})
	captainID := uuid.New()
	id := uuid.New()

	blackouts.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.BlackoutDate) bool {
		return b.OwnerID == captainID &&
			b.BlackoutDate.Equal(time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC)) &&
			ptr.Deref(b.Reason) == "Holiday"
	})).Return(&domain.BlackoutDate{
		ID:           id,
		OwnerID:      captainID,
		BlackoutDate: time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC),
		Reason:       ptr.Ptr("Holiday"),
	}, nil).Once()

	resp, err := svc.CreateBlackout(context.Background(), captainID, &models.CreateBlackoutRequest{
		Date:   "2025-07-04",
		Reason: ptr.Ptr("  Holiday "),
	})
	require.NoError(t, err)
	assert.Equal(t, id, resp.ID)
	assert.Equal(t, "2025-07-04", resp.Date)

	blackouts.On("Create", mock.Anything, mock.Anything).Return(nil, blackoutRepo.ErrDuplicateBlackout).Once()
	_, err = svc.CreateBlackout(context.Background(), captainID, &models.CreateBlackoutRequest{Date: "2025-07-04"})
	assert.ErrorIs(t, err, ErrBlackoutExists)

	_, err = svc.CreateBlackout(context.Background(), captainID, &models.CreateBlackoutRequest{Date: "July 4th"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteBlackout(t *testing.T) {
	blackouts := &mockBlackouts{}
	svc := NewService(newMemWindows(), blackouts, inlineTx{}, nopLogger{})
	captainID := uuid.New()
	known, unknown, broken := uuid.New(), uuid.New(), uuid.New()

	blackouts.On("Delete", mock.Anything, captainID, known).Return(nil)
	blackouts.On("Delete", mock.Anything, captainID, unknown).Return(blackoutRepo.ErrBlackoutNotFound)
	blackouts.On("Delete", mock.Anything, captainID, broken).Return(errors.New("connection refused"))

	assert.NoError(t, svc.DeleteBlackout(context.Background(), captainID, known))
	assert.ErrorIs(t, svc.DeleteBlackout(context.Background(), captainID, unknown), ErrBlackoutNotFound)
	assert.ErrorIs(t, svc.DeleteBlackout(context.Background(), captainID, broken), ErrInternal)
}

func TestListBlackouts(t *testing.T) {
	blackouts := &mockBlackouts{}
	svc := NewService(newMemWindows(), blackouts, inlineTx{}, nopLogger{})
	captainID := uuid.New()
	from := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	blackouts.On("List", mock.Anything, captainID, &from).Return([]domain.BlackoutDate{
		{ID: uuid.New(), BlackoutDate: time.Date(2025, 7, 4, 0, 0, 0, 0, time.UTC)},
		{ID: uuid.New(), BlackoutDate: time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC), Reason: ptr.Ptr("Christmas")},
	}, nil)

	resp, err := svc.ListBlackouts(context.Background(), captainID, &from)
	require.NoError(t, err)
	require.Len(t, resp.BlackoutDates, 2)
	assert.Equal(t, "2025-12-25", resp.BlackoutDates[1].Date)
}
