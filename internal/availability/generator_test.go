package availability

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfaux/dockslot-app-sub001/internal/domain"
	"github.com/ericfaux/dockslot-app-sub001/pkg/types"
)

type testLogger struct {
	warnings []string
}

func (l *testLogger) Warn(format string, v ...interface{}) {
	l.warnings = append(l.warnings, fmt.Sprintf(format, v...))
}

func newYork(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return loc
}

func window(day int, start, end string) domain.AvailabilityWindow {
	return domain.AvailabilityWindow{
		DayOfWeek: day,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		IsActive:  true,
	}
}

func clock(s domain.TimeSlot, loc *time.Location) string {
	return s.Start.In(loc).Format("15:04") + "-" + s.End.In(loc).Format("15:04")
}

func TestSlots_NewYorkMondayExample(t *testing.T) {
	loc := newYork(t)
	monday := time.Date(2025, 7, 7, 0, 0, 0, 0, loc)
	g := NewGenerator(30*time.Minute, &testLogger{})

	slots := g.Slots(Input{
		Date:     monday,
		Location: loc,
		Windows:  []domain.AvailabilityWindow{window(1, "06:00", "21:00")},
		Duration: 4 * time.Hour,
		Buffer:   60 * time.Minute,
		Now:      time.Date(2025, 7, 7, 4, 30, 0, 0, loc),
	})

	require.Len(t, slots, 23)
	assert.Equal(t, "06:00-10:00", clock(slots[0], loc))
	assert.True(t, slots[0].Available)
	assert.Equal(t, "17:00-21:00", clock(slots[len(slots)-1], loc))
	for _, s := range slots {
		assert.NotEqual(t, "17:30-21:30", clock(s, loc))
	}

	// 06:00 is inside the buffer when it is already 05:30
	slots = g.Slots(Input{
		Date:     monday,
		Location: loc,
		Windows:  []domain.AvailabilityWindow{window(1, "06:00", "21:00")},
		Duration: 4 * time.Hour,
		Buffer:   60 * time.Minute,
		Now:      time.Date(2025, 7, 7, 5, 30, 0, 0, loc),
	})
	assert.False(t, slots[0].Available)
	assert.True(t, slots[1].Available)

	// instants are absolute: 06:00 EDT is 10:00 UTC
	assert.Equal(t, time.Date(2025, 7, 7, 10, 0, 0, 0, time.UTC), slots[0].Start.UTC())
}

func TestSlots_BookingOverlap(t *testing.T) {
	loc := newYork(t)
	day := time.Date(2025, 7, 8, 0, 0, 0, 0, loc)
	booked := &domain.Booking{
		Status:         domain.StatusConfirmed,
		ScheduledStart: time.Date(2025, 7, 8, 10, 0, 0, 0, loc),
		ScheduledEnd:   time.Date(2025, 7, 8, 14, 0, 0, 0, loc),
	}
	cancelled := &domain.Booking{
		Status:         domain.StatusCancelled,
		ScheduledStart: time.Date(2025, 7, 8, 14, 0, 0, 0, loc),
		ScheduledEnd:   time.Date(2025, 7, 8, 18, 0, 0, 0, loc),
	}

	slots := NewGenerator(30*time.Minute, &testLogger{}).Slots(Input{
		Date:     day,
		Location: loc,
		Windows:  []domain.AvailabilityWindow{window(2, "06:00", "21:00")},
		Bookings: []*domain.Booking{booked, cancelled},
		Duration: 4 * time.Hour,
		Now:      time.Date(2025, 7, 1, 0, 0, 0, 0, loc),
	})

	byClock := make(map[string]bool)
	for _, s := range slots {
		byClock[clock(s, loc)] = s.Available
		if s.Available {
			assert.False(t, booked.Overlaps(s.Start, s.End), clock(s, loc))
		}
	}

	assert.True(t, byClock["06:00-10:00"], "touching the booking start is allowed")
	assert.False(t, byClock["06:30-10:30"])
	assert.False(t, byClock["13:30-17:30"])
	assert.True(t, byClock["14:00-18:00"], "cancelled bookings do not occupy")
}

func TestSlots_WindowContainment(t *testing.T) {
	loc := time.UTC
	day := time.Date(2025, 7, 9, 0, 0, 0, 0, loc)

	slots := NewGenerator(30*time.Minute, &testLogger{}).Slots(Input{
		Date:     day,
		Location: loc,
		Windows:  []domain.AvailabilityWindow{window(3, "08:00", "11:00")},
		Duration: 90 * time.Minute,
		Now:      day.Add(-24 * time.Hour),
	})

	windowStart := day.Add(8 * time.Hour)
	windowEnd := day.Add(11 * time.Hour)
	require.Len(t, slots, 4)
	for _, s := range slots {
		assert.False(t, s.Start.Before(windowStart))
		assert.False(t, s.End.After(windowEnd))
	}
}

func TestSlots_SkipsMalformedAndInactiveWindows(t *testing.T) {
	loc := time.UTC
	day := time.Date(2025, 7, 10, 0, 0, 0, 0, loc)
	log := &testLogger{}
	inactive := window(4, "06:00", "08:00")
	inactive.IsActive = false

	slots := NewGenerator(30*time.Minute, log).Slots(Input{
		Date:     day,
		Location: loc,
		Windows: []domain.AvailabilityWindow{
			window(4, "25:99", "10:00"),
			inactive,
			window(4, "12:00", "14:00"),
		},
		Duration: time.Hour,
		Now:      day.Add(-time.Hour),
	})

	require.Len(t, slots, 3)
	assert.Equal(t, "12:00-13:00", clock(slots[0], loc))
	assert.Len(t, log.warnings, 1)
}

func TestSlots_DeduplicatesOverlappingWindows(t *testing.T) {
	loc := time.UTC
	day := time.Date(2025, 7, 11, 0, 0, 0, 0, loc)

	slots := NewGenerator(30*time.Minute, &testLogger{}).Slots(Input{
		Date:     day,
		Location: loc,
		Windows: []domain.AvailabilityWindow{
			window(5, "06:00", "10:00"),
			window(5, "07:00", "11:00"),
		},
		Duration: 2 * time.Hour,
		Now:      day.Add(-time.Hour),
	})

	// 06:00..08:00 from the first window, then only 08:30 and 09:00 are new
	require.Len(t, slots, 7)
	seen := make(map[time.Time]bool)
	for _, s := range slots {
		assert.False(t, seen[s.Start], "duplicate %s", s.Start)
		seen[s.Start] = true
	}
	assert.Equal(t, "09:00-11:00", clock(slots[6], loc))
}

func TestSlots_StopsAfterLastHour(t *testing.T) {
	loc := time.UTC
	day := time.Date(2025, 7, 12, 0, 0, 0, 0, loc)

	slots := NewGenerator(30*time.Minute, &testLogger{}).Slots(Input{
		Date:     day,
		Location: loc,
		Windows:  []domain.AvailabilityWindow{window(6, "22:00", "24:00")},
		Duration: 30 * time.Minute,
		Now:      day.Add(-time.Hour),
	})

	require.Len(t, slots, 4)
	assert.Equal(t, "23:30-00:00", clock(slots[3], loc))
}

func TestSlots_ConfigurableStep(t *testing.T) {
	loc := time.UTC
	day := time.Date(2025, 7, 13, 0, 0, 0, 0, loc)

	slots := NewGenerator(15*time.Minute, &testLogger{}).Slots(Input{
		Date:     day,
		Location: loc,
		Windows:  []domain.AvailabilityWindow{window(0, "09:00", "10:00")},
		Duration: 30 * time.Minute,
		Now:      day.Add(-time.Hour),
	})

	require.Len(t, slots, 3)
	assert.Equal(t, "09:15-09:45", clock(slots[1], loc))
}

func TestIsBookable(t *testing.T) {
	base := time.Date(2025, 7, 14, 10, 0, 0, 0, time.UTC)
	slots := []domain.TimeSlot{
		{Start: base, End: base.Add(time.Hour), Available: true},
		{Start: base.Add(30 * time.Minute), End: base.Add(90 * time.Minute), Available: false},
	}

	assert.True(t, IsBookable(slots, base))
	assert.False(t, IsBookable(slots, base.Add(30*time.Minute)))
	assert.False(t, IsBookable(slots, base.Add(15*time.Minute)))
}

func TestSlots_WindowEndingAtMidnight(t *testing.T) {
	loc := newYork(t)
	monday := time.Date(2025, 7, 7, 0, 0, 0, 0, loc)
	g := NewGenerator(30*time.Minute, &testLogger{})

	slots := g.Slots(Input{
		Date:     monday,
		Location: loc,
		Windows:  []domain.AvailabilityWindow{window(1, "18:00", "24:00")},
		Duration: 4 * time.Hour,
		Now:      time.Date(2025, 7, 1, 0, 0, 0, 0, loc),
	})

	require.Len(t, slots, 5)
	assert.Equal(t, "18:00-22:00", clock(slots[0], loc))
	assert.Equal(t, "20:00-00:00", clock(slots[len(slots)-1], loc))
}
