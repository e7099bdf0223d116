package availability

import (
	"time"

	"github.com/ericfaux/dockslot-app-sub001/internal/domain"
)

const (
	DefaultStep = 30 * time.Minute

	// lastStartHour stops the walk once it passes 23:xx, whatever the window says
	lastStartHour = 23
)

// Logger is the subset of pkg/logger the generator needs
type Logger interface {
	Warn(format string, v ...interface{})
}

// Input is everything needed to lay out one day of slots.
// Only the calendar part of Date is used; boundaries are built in Location.
type Input struct {
	Date     time.Time
	Location *time.Location
	Windows  []domain.AvailabilityWindow
	Bookings []*domain.Booking
	Duration time.Duration
	Buffer   time.Duration
	Now      time.Time
}

// Generator lays out fixed-length candidate slots inside weekly windows
type Generator struct {
	step   time.Duration
	logger Logger
}

// NewGenerator creates a generator walking windows in step increments; a non-positive step uses DefaultStep
func NewGenerator(step time.Duration, logger Logger) *Generator {
	if step <= 0 {
		step = DefaultStep
	}
	return &Generator{step: step, logger: logger}
}

// Step returns the walk increment
func (g *Generator) Step() time.Duration {
	return g.step
}

// Slots walks every active window in order and marks each candidate available
// unless it starts before Now+Buffer or overlaps an occupying booking.
// A start instant already emitted by an earlier window is not repeated.
func (g *Generator) Slots(in Input) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0)
	if in.Duration <= 0 {
		return slots
	}

	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}
	year, month, day := in.Date.Date()
	earliest := in.Now.Add(in.Buffer)
	stepMinutes := int(g.step / time.Minute)
	if stepMinutes <= 0 {
		stepMinutes = int(DefaultStep / time.Minute)
	}

	seen := make(map[int64]struct{})

	for _, w := range in.Windows {
		if !w.IsActive {
			continue
		}

		startMin, err := w.StartTime.Minutes()
		if err != nil {
			g.logger.Warn("availability: skip window day=%d start=%q: %v", w.DayOfWeek, w.StartTime, err)
			continue
		}
		windowEnd, err := w.EndTime.On(year, month, day, loc)
		if err != nil {
			g.logger.Warn("availability: skip window day=%d end=%q: %v", w.DayOfWeek, w.EndTime, err)
			continue
		}

		for m := startMin; m/60 <= lastStartHour; m += stepMinutes {
			start := time.Date(year, month, day, m/60, m%60, 0, 0, loc)
			end := start.Add(in.Duration)
			if end.After(windowEnd) {
				break
			}

			key := start.UnixNano()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			slots = append(slots, domain.TimeSlot{
				Start:     start,
				End:       end,
				Available: !start.Before(earliest) && !overlapsAny(start, end, in.Bookings),
			})
		}
	}

	return slots
}

// IsBookable reports whether start is one of the generated slots and is available
func IsBookable(slots []domain.TimeSlot, start time.Time) bool {
	for _, s := range slots {
		if s.Start.Equal(start) {
			return s.Available
		}
	}
	return false
}

func overlapsAny(start, end time.Time, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if b == nil || !b.IsActive() {
			continue
		}
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}
