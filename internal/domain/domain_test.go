package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBookingStatus_Occupies(t *testing.T) {
	for _, s := range OccupyingStatuses {
		assert.True(t, s.Occupies(), s)
	}
	for _, s := range InactiveStatuses {
		assert.False(t, s.Occupies(), s)
	}
	assert.False(t, BookingStatus("unknown").IsValid())
}

func TestBooking_Overlaps(t *testing.T) {
	base := time.Date(2025, 7, 7, 14, 0, 0, 0, time.UTC)
	b := &Booking{ScheduledStart: base, ScheduledEnd: base.Add(4 * time.Hour)}

	assert.True(t, b.Overlaps(base.Add(-time.Hour), base.Add(time.Minute)))
	assert.True(t, b.Overlaps(base.Add(time.Hour), base.Add(2*time.Hour)))
	// touching ranges do not overlap
	assert.False(t, b.Overlaps(base.Add(-4*time.Hour), base))
	assert.False(t, b.Overlaps(base.Add(4*time.Hour), base.Add(8*time.Hour)))
}

func TestBooking_CanTransitionTo(t *testing.T) {
	b := &Booking{Status: StatusPendingDeposit}
	assert.True(t, b.CanTransitionTo(StatusConfirmed))
	assert.False(t, b.CanTransitionTo(StatusCompleted))
	assert.False(t, b.CanTransitionTo(StatusPendingDeposit))

	b.Status = StatusCancelled
	assert.False(t, b.CanTransitionTo(StatusConfirmed))
}

func TestDefaultWeek(t *testing.T) {
	owner := uuid.New()
	week := DefaultWeek(owner)

	assert.Len(t, week, 7)
	for i, w := range week {
		assert.Equal(t, i, w.DayOfWeek)
		assert.Equal(t, owner, w.OwnerID)
		assert.Equal(t, "06:00", w.StartTime.String())
		assert.Equal(t, "21:00", w.EndTime.String())
		assert.Equal(t, i != 1, w.IsActive)
	}
}

func TestTripType_Money(t *testing.T) {
	tt := &TripType{DurationHours: 4.5, PriceTotal: 450.25, DepositAmount: 99.999}

	assert.Equal(t, 270*time.Minute, tt.Duration())
	assert.Equal(t, int64(45025), tt.PriceTotalCents())
	assert.Equal(t, int64(10000), tt.DepositAmountCents())
}

func TestGuestToken_IsExpired(t *testing.T) {
	exp := time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)
	tok := &GuestToken{ExpiresAt: exp}

	assert.False(t, tok.IsExpired(exp.Add(-time.Second)))
	assert.True(t, tok.IsExpired(exp))
}

func TestCaptainProfile_Location(t *testing.T) {
	p := &CaptainProfile{Timezone: "America/Chicago"}
	assert.Equal(t, "America/Chicago", p.Location().String())

	p.Timezone = "Not/AZone"
	assert.Equal(t, DefaultTimezone, p.Location().String())
}
