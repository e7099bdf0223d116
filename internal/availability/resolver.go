package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ericfaux/dockslot-app-sub001/internal/domain"
	blackoutRepo "github.com/ericfaux/dockslot-app-sub001/internal/infra/storage/blackout"
)

// Resolver loads a captain's calendar for one date and runs the generator over it.
// It is shared by the public availability view and the booking commit, so both
// apply exactly the same rules.
type Resolver struct {
	windows   WindowRepository
	blackouts BlackoutRepository
	bookings  BookingRepository
	generator *Generator
	logger    ResolverLogger
}

// NewResolver creates a new day resolver instance
func NewResolver(
	windows WindowRepository,
	blackouts BlackoutRepository,
	bookings BookingRepository,
	generator *Generator,
	logger ResolverLogger,
) *Resolver {
	return &Resolver{
		windows:   windows,
		blackouts: blackouts,
		bookings:  bookings,
		generator: generator,
		logger:    logger,
	}
}

// Day computes availability of tripType on the calendar date (only Y-M-D of date is used)
func (r *Resolver) Day(
	ctx context.Context,
	profile *domain.CaptainProfile,
	tripType *domain.TripType,
	date time.Time,
	now time.Time,
) (*domain.DayAvailability, error) {
	if profile.IsHibernating {
		return nil, ErrHibernating
	}

	loc := profile.Location()
	year, month, day := date.Date()
	dayStart := time.Date(year, month, day, 0, 0, 0, 0, loc)

	if err := CheckRange(dayStart, now.In(loc), profile.AdvanceBookingDays); err != nil {
		return nil, err
	}

	result := &domain.DayAvailability{
		Date:      time.Date(year, month, day, 0, 0, 0, 0, time.UTC),
		DayOfWeek: int(dayStart.Weekday()),
		Slots:     []domain.TimeSlot{},
	}

	blackout, err := r.blackouts.GetByDate(ctx, profile.ID, result.Date)
	if err != nil && !errors.Is(err, blackoutRepo.ErrBlackoutNotFound) {
		return nil, fmt.Errorf("%w: blackout: %w", ErrLoad, err)
	}
	if blackout != nil {
		r.logger.Info("availability: captain=%s date=%s is blacked out", profile.ID, result.Date.Format(domain.DateFormat))
		result.IsBlackout = true
		result.BlackoutReason = blackout.Reason
		return result, nil
	}

	windows, err := r.windows.GetActiveByDay(ctx, profile.ID, result.DayOfWeek)
	if err != nil {
		return nil, fmt.Errorf("%w: windows: %w", ErrLoad, err)
	}
	if len(windows) == 0 {
		return result, nil
	}

	bookings, err := r.bookings.GetOccupying(ctx, profile.ID, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("%w: bookings: %w", ErrLoad, err)
	}

	result.Slots = r.generator.Slots(Input{
		Date:     dayStart,
		Location: loc,
		Windows:  windows,
		Bookings: bookings,
		Duration: tripType.Duration(),
		Buffer:   profile.Buffer(),
		Now:      now,
	})

	return result, nil
}

// CheckRange accepts dates in [today, today+advanceDays] where today is taken from now's location
func CheckRange(date, now time.Time, advanceDays int) error {
	ty, tm, td := now.Date()
	today := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	y, m, d := date.Date()
	target := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	if target.Before(today) {
		return fmt.Errorf("%w: %s is in the past", ErrDateOutOfRange, target.Format(domain.DateFormat))
	}
	if advanceDays < 0 {
		advanceDays = 0
	}
	if target.After(today.AddDate(0, 0, advanceDays)) {
		return fmt.Errorf("%w: bookings open %d days in advance", ErrDateOutOfRange, advanceDays)
	}
	return nil
}
