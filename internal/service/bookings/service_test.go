package bookings

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ericfaux/dockslot-app-sub001/internal/domain"
	bookingRepo "github.com/ericfaux/dockslot-app-sub001/internal/infra/storage/booking"
	guestTokenRepo "github.com/ericfaux/dockslot-app-sub001/internal/infra/storage/guesttoken"
	"github.com/ericfaux/dockslot-app-sub001/internal/service/bookings/models"
	"github.com/ericfaux/dockslot-app-sub001/pkg/ptr"
)

type mockBookings struct{ mock.Mock }

func (m *mockBookings) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

func (m *mockBookings) GetByCaptainWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter)
	b, _ := args.Get(0).([]*domain.Booking)
	return b, args.Error(1)
}

func (m *mockBookings) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockBookings) Cancel(ctx context.Context, id uuid.UUID, reason string) error {
	return m.Called(ctx, id, reason).Error(0)
}

type mockPassengers struct{ mock.Mock }

func (m *mockPassengers) ListByBooking(ctx context.Context, id uuid.UUID) ([]domain.Passenger, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).([]domain.Passenger)
	return p, args.Error(1)
}

type mockTokens struct{ mock.Mock }

func (m *mockTokens) GetByToken(ctx context.Context, token string) (*domain.GuestToken, error) {
	args := m.Called(ctx, token)
	t, _ := args.Get(0).(*domain.GuestToken)
	return t, args.Error(1)
}

type recorder struct {
	audit  []*domain.AuditLogEntry
	events []*domain.OutboxEvent
}

func (r *recorder) Create(_ context.Context, e *domain.AuditLogEntry) error {
	r.audit = append(r.audit, e)
	return nil
}

func (r *recorder) Insert(_ context.Context, e *domain.OutboxEvent) error {
	r.events = append(r.events, e)
	return nil
}

type inlineTx struct{ calls int }

func (t *inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type fixture struct {
	svc        *Service
	bookings   *mockBookings
	passengers *mockPassengers
	tokens     *mockTokens
	rec        *recorder
	tx         *inlineTx
	captainID  uuid.UUID
	booking    *domain.Booking
	now        time.Time
}

func newFixture() *fixture {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	captainID := uuid.New()
	f := &fixture{
		bookings:   &mockBookings{},
		passengers: &mockPassengers{},
		tokens:     &mockTokens{},
		rec:        &recorder{},
		tx:         &inlineTx{},
		captainID:  captainID,
		now:        now,
		booking: &domain.Booking{
			ID:               uuid.New(),
			CaptainID:        captainID,
			TripTypeID:       uuid.New(),
			ScheduledStart:   now.Add(72 * time.Hour),
			ScheduledEnd:     now.Add(76 * time.Hour),
			Status:           domain.StatusConfirmed,
			PaymentStatus:    domain.PaymentDepositPaid,
			PartySize:        2,
			GuestName:        "Ada Lovelace",
			GuestEmail:       "ada@example.com",
			ConfirmationCode: "K7M2QX",
		},
	}
	f.svc = NewService(f.bookings, f.passengers, f.tokens, f.rec, f.rec, f.tx, nopLogger{})
	f.svc.clock = fixedClock{t: now}
	f.bookings.On("GetByID", mock.Anything, f.booking.ID).Return(f.booking, nil).Maybe()
	return f
}

func TestGetByID(t *testing.T) {
	f := newFixture()
	f.passengers.On("ListByBooking", mock.Anything, f.booking.ID).Return([]domain.Passenger{
		{FullName: "Ada Lovelace", IsPrimaryContact: true},
		{FullName: "Charles Babbage"},
	}, nil)

	resp, err := f.svc.GetByID(context.Background(), f.booking.ID, f.captainID)
	require.NoError(t, err)

	assert.Equal(t, f.booking.ID, resp.ID)
	assert.Equal(t, "confirmed", resp.Status)
	require.Len(t, resp.Passengers, 2)
	assert.True(t, resp.Passengers[0].IsPrimaryContact)
}

func TestGetByID_OtherCaptain(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetByID(context.Background(), f.booking.ID, uuid.New())
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newFixture()
	id := uuid.New()
	f.bookings.On("GetByID", mock.Anything, id).Return(nil, bookingRepo.ErrBookingNotFound)

	_, err := f.svc.GetByID(context.Background(), id, f.captainID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByGuestToken(t *testing.T) {
	f := newFixture()
	f.tokens.On("GetByToken", mock.Anything, "valid").Return(&domain.GuestToken{
		Token: "valid", BookingID: f.booking.ID, ExpiresAt: f.now.Add(time.Hour),
	}, nil)
	f.tokens.On("GetByToken", mock.Anything, "expired").Return(&domain.GuestToken{
		Token: "expired", BookingID: f.booking.ID, ExpiresAt: f.now,
	}, nil)
	f.tokens.On("GetByToken", mock.Anything, "unknown").Return(nil, guestTokenRepo.ErrTokenNotFound)
	f.passengers.On("ListByBooking", mock.Anything, f.booking.ID).Return([]domain.Passenger{}, nil)

	resp, err := f.svc.GetByGuestToken(context.Background(), "valid")
	require.NoError(t, err)
	assert.Equal(t, "K7M2QX", resp.ConfirmationCode)

	_, err = f.svc.GetByGuestToken(context.Background(), "expired")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = f.svc.GetByGuestToken(context.Background(), "unknown")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = f.svc.GetByGuestToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetCaptainBookings(t *testing.T) {
	f := newFixture()
	from := f.now
	to := f.now.Add(7 * 24 * time.Hour)
	status := domain.StatusConfirmed

	f.bookings.On("GetByCaptainWithFilter", mock.Anything, domain.BookingsFilter{
		CaptainID: f.captainID,
		From:      &from,
		To:        &to,
		Status:    &status,
	}).Return([]*domain.Booking{f.booking}, nil)

	resp, err := f.svc.GetCaptainBookings(context.Background(), &models.GetCaptainBookingsRequest{
		CaptainID: f.captainID,
		From:      &from,
		To:        &to,
		Status:    ptr.Ptr("confirmed"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)

	_, err = f.svc.GetCaptainBookings(context.Background(), &models.GetCaptainBookingsRequest{
		CaptainID: f.captainID,
		Status:    ptr.Ptr("pending"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.GetCaptainBookings(context.Background(), &models.GetCaptainBookingsRequest{
		CaptainID: f.captainID,
		From:      &to,
		To:        &from,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel(t *testing.T) {
	f := newFixture()
	f.bookings.On("Cancel", mock.Anything, f.booking.ID, "Small craft advisory").Return(nil)

	err := f.svc.Cancel(context.Background(), f.booking.ID, &models.CancelBookingRequest{
		CaptainID:          f.captainID,
		CancellationReason: "Small craft advisory",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, f.tx.calls)
	require.Len(t, f.rec.audit, 1)
	assert.Equal(t, domain.AuditBookingCancelled, f.rec.audit[0].Action)
	require.Len(t, f.rec.events, 1)
	assert.Equal(t, domain.EventBookingCancelled, f.rec.events[0].EventType)

	var payload domain.BookingEventPayload
	require.NoError(t, json.Unmarshal(f.rec.events[0].Payload, &payload))
	assert.Equal(t, domain.StatusCancelled, payload.Status)
	assert.Equal(t, domain.StatusConfirmed, payload.PreviousStatus)
}

func TestCancel_Rejected(t *testing.T) {
	t.Run("terminal status", func(t *testing.T) {
		f := newFixture()
		f.booking.Status = domain.StatusCompleted
		err := f.svc.Cancel(context.Background(), f.booking.ID, &models.CancelBookingRequest{CaptainID: f.captainID})
		assert.ErrorIs(t, err, ErrCannotCancel)
		assert.Empty(t, f.rec.events)
	})

	t.Run("other captain", func(t *testing.T) {
		f := newFixture()
		err := f.svc.Cancel(context.Background(), f.booking.ID, &models.CancelBookingRequest{CaptainID: uuid.New()})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("reason too long", func(t *testing.T) {
		f := newFixture()
		reason := make([]rune, domain.MaxCancellationReasonLength+1)
		for i := range reason {
			reason[i] = 'x'
		}
		err := f.svc.Cancel(context.Background(), f.booking.ID, &models.CancelBookingRequest{
			CaptainID: f.captainID, CancellationReason: string(reason),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Zero(t, f.tx.calls)
	})
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture()
	f.bookings.On("UpdateStatus", mock.Anything, f.booking.ID, domain.StatusWeatherHold).Return(nil)

	err := f.svc.UpdateStatus(context.Background(), f.booking.ID, &models.UpdateStatusRequest{
		CaptainID: f.captainID,
		Status:    "weather_hold",
	})
	require.NoError(t, err)

	require.Len(t, f.rec.events, 1)
	assert.Equal(t, domain.EventBookingStatusChanged, f.rec.events[0].EventType)
	assert.Equal(t, domain.AuditBookingStatusChanged, f.rec.audit[0].Action)
}

func TestUpdateStatus_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		current domain.BookingStatus
		next    string
		repoErr error
		wantErr error
	}{
		{"unknown status", domain.StatusConfirmed, "pending", nil, ErrInvalidInput},
		{"cancel via status", domain.StatusConfirmed, "cancelled", nil, ErrInvalidTransition},
		{"terminal", domain.StatusNoShow, "confirmed", nil, ErrInvalidTransition},
		{"pending cannot complete", domain.StatusPendingDeposit, "completed", nil, ErrInvalidTransition},
		{"overlap on reactivation", domain.StatusWeatherHold, "confirmed", bookingRepo.ErrSlotNotAvailable, ErrSlotNotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.booking.Status = tt.current
			f.bookings.On("UpdateStatus", mock.Anything, f.booking.ID, mock.Anything).Return(tt.repoErr).Maybe()

			err := f.svc.UpdateStatus(context.Background(), f.booking.ID, &models.UpdateStatusRequest{
				CaptainID: f.captainID,
				Status:    tt.next,
			})

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, f.rec.events)
		})
	}
}
