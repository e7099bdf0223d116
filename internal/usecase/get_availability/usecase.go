package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/ericfaux/dockslot-app-sub001/internal/availability"
	"github.com/ericfaux/dockslot-app-sub001/internal/domain"
	profileRepo "github.com/ericfaux/dockslot-app-sub001/internal/infra/storage/profile"
	tripTypeRepo "github.com/ericfaux/dockslot-app-sub001/internal/infra/storage/triptype"
)

// Results reported to Metrics
const (
	ResultOK          = "ok"
	ResultBlackout    = "blackout"
	ResultHibernating = "hibernating"
	ResultOutOfRange  = "out_of_range"
	ResultError       = "error"
)

// UseCase returns the bookable slots of a trip type on a date
type UseCase struct {
	profileRepo  ProfileRepository
	tripTypeRepo TripTypeRepository
	resolver     DayResolver
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates a new availability use case instance
func NewUseCase(
	profileRepo ProfileRepository,
	tripTypeRepo TripTypeRepository,
	resolver DayResolver,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		profileRepo:  profileRepo,
		tripTypeRepo: tripTypeRepo,
		resolver:     resolver,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: captain=%s, trip_type=%s, date=%s", req.CaptainID, req.TripTypeID, req.Date)

	// 1. Validate input
	parsed, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Current time
	now := uc.timeProvider.Now()

	// 3. Captain profile
	profile, err := uc.profileRepo.GetByID(ctx, parsed.captainID)
	if err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			uc.logger.Warn("GetAvailability: captain id=%s not found", parsed.captainID)
			return nil, ErrCaptainNotFound
		}
		uc.logger.Error("GetAvailability: failed to get profile id=%s: %v", parsed.captainID, err)
		uc.observe(ResultError)
		return nil, fmt.Errorf("%w: failed to get profile: %v", ErrInternal, err)
	}

	if profile.IsHibernating {
		uc.logger.Info("GetAvailability: captain id=%s is hibernating", profile.ID)
		uc.observe(ResultHibernating)
		return nil, ErrHibernating
	}

	// 4. Trip type must be active and offered by this captain
	tripType, err := uc.tripTypeRepo.GetByID(ctx, parsed.tripTypeID)
	if err != nil {
		if errors.Is(err, tripTypeRepo.ErrTripTypeNotFound) {
			uc.logger.Warn("GetAvailability: trip type id=%s not found", parsed.tripTypeID)
			return nil, ErrTripTypeNotFound
		}
		uc.logger.Error("GetAvailability: failed to get trip type id=%s: %v", parsed.tripTypeID, err)
		uc.observe(ResultError)
		return nil, fmt.Errorf("%w: failed to get trip type: %v", ErrInternal, err)
	}
	if tripType.OwnerID != profile.ID || !tripType.IsActive {
		uc.logger.Warn("GetAvailability: trip type id=%s is not offered by captain id=%s", tripType.ID, profile.ID)
		return nil, ErrTripTypeNotFound
	}

	// 5. Blackout, windows and occupying bookings for the day
	day, err := uc.resolver.Day(ctx, profile, tripType, parsed.date, now)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrHibernating):
			uc.observe(ResultHibernating)
			return nil, ErrHibernating
		case errors.Is(err, availability.ErrDateOutOfRange):
			uc.logger.Warn("GetAvailability: %v", err)
			uc.observe(ResultOutOfRange)
			return nil, fmt.Errorf("%w: %v", ErrDateUnavailable, err)
		default:
			uc.logger.Error("GetAvailability: failed to compute slots: %v", err)
			uc.observe(ResultError)
			return nil, fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
		}
	}

	if day.IsBlackout {
		uc.observe(ResultBlackout)
	} else {
		uc.observe(ResultOK)
	}

	return toResponse(day, profile), nil
}

func (uc *UseCase) observe(result string) {
	if uc.metrics != nil {
		uc.metrics.ObserveAvailability(result)
	}
}

func toResponse(day *domain.DayAvailability, profile *domain.CaptainProfile) *Response {
	loc := profile.Location()
	slots := make([]Slot, 0, len(day.Slots))
	for _, s := range day.Slots {
		slots = append(slots, Slot{
			StartTime: s.Start.In(loc).Format(domain.TimeFormat),
			EndTime:   s.End.In(loc).Format(domain.TimeFormat),
			Start:     s.Start,
			End:       s.End,
			Available: s.Available,
		})
	}

	return &Response{
		Date:           day.Date.Format(domain.DateFormat),
		DayOfWeek:      day.DayOfWeek,
		IsBlackout:     day.IsBlackout,
		BlackoutReason: day.BlackoutReason,
		Timezone:       loc.String(),
		Slots:          slots,
	}
}
