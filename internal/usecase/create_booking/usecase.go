package create_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ericfaux/dockslot-app-sub001/internal/availability"
	"github.com/ericfaux/dockslot-app-sub001/internal/domain"
	bookingRepo "github.com/ericfaux/dockslot-app-sub001/internal/infra/storage/booking"
	profileRepo "github.com/ericfaux/dockslot-app-sub001/internal/infra/storage/profile"
	tripTypeRepo "github.com/ericfaux/dockslot-app-sub001/internal/infra/storage/triptype"
	"github.com/ericfaux/dockslot-app-sub001/pkg/pgerr"
	"github.com/ericfaux/dockslot-app-sub001/pkg/ptr"
)

// Conflict stages reported to Metrics
const (
	StageRevalidation = "revalidation"
	StageConstraint   = "constraint"
	StageRetries      = "retries"
)

const (
	DefaultMaxPartySize  = 6
	DefaultGuestTokenTTL = 7 * 24 * time.Hour

	// maxCodeAttempts bounds commits retried after a confirmation code collision
	maxCodeAttempts = 3
)

// Options tune the use case
type Options struct {
	MaxPartySize  int
	GuestTokenTTL time.Duration // counted from the trip start
}

// Repositories groups the stores written during a commit
type Repositories struct {
	Profiles    ProfileRepository
	TripTypes   TripTypeRepository
	Bookings    BookingRepository
	GuestTokens GuestTokenRepository
	Passengers  PassengerRepository
	AuditLog    AuditLogRepository
	Outbox      OutboxRepository
}

// UseCase commits a guest booking
type UseCase struct {
	repos        Repositories
	resolver     DayResolver
	codes        CodeGenerator
	txManager    TransactionManager
	metrics      Metrics
	opts         Options
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates a new booking use case instance
func NewUseCase(
	repos Repositories,
	resolver DayResolver,
	codes CodeGenerator,
	txManager TransactionManager,
	metrics Metrics,
	opts Options,
	logger Logger,
) *UseCase {
	if opts.MaxPartySize <= 0 {
		opts.MaxPartySize = DefaultMaxPartySize
	}
	if opts.GuestTokenTTL <= 0 {
		opts.GuestTokenTTL = DefaultGuestTokenTTL
	}
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &UseCase{
		repos:        repos,
		resolver:     resolver,
		codes:        codes,
		txManager:    txManager,
		metrics:      metrics,
		opts:         opts,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute validates the request, then re-checks the slot and writes the booking,
// guest token, passengers, audit entry and outbox event in one serializable
// transaction. Occupying bookings of the day are read FOR UPDATE, so two
// concurrent requests for the same slot serialize and the second one sees the first.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: captain=%s, trip_type=%s, date=%s, time=%s, party=%d",
		req.CaptainID, req.TripTypeID, req.ScheduledDate, req.ScheduledTime, req.PartySize)

	// 1. Field validation
	parsed, err := validateRequest(req, uc.opts.MaxPartySize)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Commit; a confirmation code collision is retried with a fresh code
	var result *Response
	for attempt := 1; ; attempt++ {
		result, err = uc.commitInTx(ctx, req, parsed)
		if !errors.Is(err, errConfirmationCodeTaken) || attempt == maxCodeAttempts {
			break
		}
		uc.logger.Warn("CreateBooking: confirmation code collision, regenerating (attempt %d/%d)", attempt, maxCodeAttempts)
	}
	if err != nil {
		return nil, uc.mapTxError(err)
	}

	uc.metrics.BookingCreated()
	uc.logger.Info("CreateBooking: created booking id=%s code=%s", result.BookingID, result.ConfirmationCode)

	return result, nil
}

// commitInTx re-checks the slot and writes the booking in one serializable transaction
func (uc *UseCase) commitInTx(ctx context.Context, req *Request, parsed *parsedRequest) (*Response, error) {
	var result *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// a retried attempt must see a fresh clock and fresh codes
		now := uc.timeProvider.Now()

		// 2.1. Captain profile
		profile, err := uc.repos.Profiles.GetByID(txCtx, parsed.captainID)
		if err != nil {
			if errors.Is(err, profileRepo.ErrProfileNotFound) {
				uc.logger.Warn("CreateBooking: captain id=%s not found", parsed.captainID)
				return ErrCaptainNotFound
			}
			return fmt.Errorf("%w: failed to get profile: %w", ErrInternal, err)
		}
		if profile.IsHibernating {
			uc.logger.Info("CreateBooking: captain id=%s is hibernating", profile.ID)
			return ErrHibernating
		}

		// 2.2. Trip type
		tripType, err := uc.repos.TripTypes.GetByID(txCtx, parsed.tripTypeID)
		if err != nil {
			if errors.Is(err, tripTypeRepo.ErrTripTypeNotFound) {
				uc.logger.Warn("CreateBooking: trip type id=%s not found", parsed.tripTypeID)
				return ErrTripTypeNotFound
			}
			return fmt.Errorf("%w: failed to get trip type: %w", ErrInternal, err)
		}
		if tripType.OwnerID != profile.ID || !tripType.IsActive {
			uc.logger.Warn("CreateBooking: trip type id=%s is not offered by captain id=%s", tripType.ID, profile.ID)
			return ErrTripTypeNotFound
		}

		// 2.3. Recompute the day with occupying bookings locked (FOR UPDATE)
		day, err := uc.resolver.Day(txCtx, profile, tripType, parsed.date, now)
		if err != nil {
			switch {
			case errors.Is(err, availability.ErrHibernating):
				return ErrHibernating
			case errors.Is(err, availability.ErrDateOutOfRange):
				uc.logger.Warn("CreateBooking: %v", err)
				return fmt.Errorf("%w: %v", ErrDateUnavailable, err)
			default:
				return fmt.Errorf("%w: failed to compute slots: %w", ErrInternal, err)
			}
		}

		loc := profile.Location()
		year, month, dayOfMonth := parsed.date.Date()
		start, err := parsed.startTime.On(year, month, dayOfMonth, loc)
		if err != nil {
			return fmt.Errorf("%w: scheduled_time: %v", ErrInvalidInput, err)
		}

		// 2.4. The requested start must still be an available slot
		if day.IsBlackout || !availability.IsBookable(day.Slots, start) {
			uc.logger.Warn("CreateBooking: slot %s on %s is not available for captain id=%s",
				parsed.startTime, parsed.date.Format(domain.DateFormat), profile.ID)
			uc.metrics.BookingConflict(StageRevalidation)
			return ErrSlotNotAvailable
		}

		// 2.5. Booking and its side effects
		res, err := uc.commit(txCtx, req, profile, tripType, start, now)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// commit writes every row of a new booking; it runs inside the caller's transaction
func (uc *UseCase) commit(
	ctx context.Context,
	req *Request,
	profile *domain.CaptainProfile,
	tripType *domain.TripType,
	start time.Time,
	now time.Time,
) (*Response, error) {
	code, err := uc.codes.ConfirmationCode()
	if err != nil {
		return nil, fmt.Errorf("%w: confirmation code: %v", ErrInternal, err)
	}
	token, err := uc.codes.GuestToken()
	if err != nil {
		return nil, fmt.Errorf("%w: guest token: %v", ErrInternal, err)
	}

	booking, err := uc.repos.Bookings.Create(ctx, &domain.Booking{
		CaptainID:          profile.ID,
		TripTypeID:         tripType.ID,
		ScheduledStart:     start.UTC(),
		ScheduledEnd:       start.Add(tripType.Duration()).UTC(),
		Status:             domain.StatusPendingDeposit,
		PaymentStatus:      domain.PaymentUnpaid,
		PartySize:          req.PartySize,
		GuestName:          req.GuestName,
		GuestEmail:         req.GuestEmail,
		GuestPhone:         req.GuestPhone,
		SpecialRequests:    req.SpecialRequests,
		ConfirmationCode:   code,
		TotalPriceCents:    tripType.PriceTotalCents(),
		DepositAmountCents: tripType.DepositAmountCents(),
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrSlotNotAvailable) {
			uc.logger.Warn("CreateBooking: overlap rejected by database for captain id=%s", profile.ID)
			uc.metrics.BookingConflict(StageConstraint)
			return nil, ErrSlotNotAvailable
		}
		if errors.Is(err, bookingRepo.ErrConfirmationCodeTaken) {
			return nil, fmt.Errorf("%w: %w", ErrInternal, errConfirmationCodeTaken)
		}
		return nil, fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
	}

	if err := uc.repos.GuestTokens.Create(ctx, &domain.GuestToken{
		Token:     token,
		BookingID: booking.ID,
		ExpiresAt: booking.ScheduledStart.Add(uc.opts.GuestTokenTTL),
	}); err != nil {
		return nil, fmt.Errorf("%w: failed to create guest token: %w", ErrInternal, err)
	}

	if err := uc.repos.Passengers.CreateBatch(ctx, passengers(booking.ID, req)); err != nil {
		return nil, fmt.Errorf("%w: failed to create passengers: %w", ErrInternal, err)
	}

	if err := uc.repos.AuditLog.Create(ctx, &domain.AuditLogEntry{
		BookingID: booking.ID,
		CaptainID: profile.ID,
		Action:    domain.AuditBookingCreated,
		Details: map[string]interface{}{
			"confirmation_code": code,
			"scheduled_start":   booking.ScheduledStart,
			"party_size":        booking.PartySize,
			"source":            "public_booking",
		},
	}); err != nil {
		return nil, fmt.Errorf("%w: failed to write audit log: %w", ErrInternal, err)
	}

	payload, err := json.Marshal(domain.BookingEventPayload{
		BookingID:        booking.ID,
		CaptainID:        booking.CaptainID,
		TripTypeID:       booking.TripTypeID,
		Status:           booking.Status,
		ConfirmationCode: code,
		ScheduledStart:   booking.ScheduledStart,
		ScheduledEnd:     booking.ScheduledEnd,
		GuestEmail:       booking.GuestEmail,
		OccurredAt:       now.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: marshal event: %v", ErrInternal, err)
	}
	if err := uc.repos.Outbox.Insert(ctx, &domain.OutboxEvent{
		AggregateType: domain.AggregateBooking,
		AggregateID:   booking.ID,
		EventType:     domain.EventBookingCreated,
		Payload:       payload,
	}); err != nil {
		return nil, fmt.Errorf("%w: failed to write outbox event: %w", ErrInternal, err)
	}

	return &Response{
		BookingID:          booking.ID,
		ConfirmationCode:   code,
		GuestToken:         token,
		ScheduledStart:     booking.ScheduledStart,
		ScheduledEnd:       booking.ScheduledEnd,
		TotalPriceCents:    booking.TotalPriceCents,
		DepositAmountCents: booking.DepositAmountCents,
	}, nil
}

// mapTxError turns exhausted serialization retries into a lost race
func (uc *UseCase) mapTxError(err error) error {
	if pgerr.IsSerializationFailure(err) {
		uc.logger.Warn("CreateBooking: gave up after serialization failures: %v", err)
		uc.metrics.BookingConflict(StageRetries)
		return ErrSlotNotAvailable
	}
	if errors.Is(err, ErrInternal) {
		uc.logger.Error("CreateBooking: %v", err)
	}
	return err
}

type nopMetrics struct{}

func (nopMetrics) BookingCreated()        {}
func (nopMetrics) BookingConflict(string) {}

func passengers(bookingID uuid.UUID, req *Request) []domain.Passenger {
	out := make([]domain.Passenger, 0, 1+len(req.Passengers))
	out = append(out, domain.Passenger{
		BookingID:        bookingID,
		FullName:         req.GuestName,
		Email:            ptr.Ptr(req.GuestEmail),
		Phone:            req.GuestPhone,
		IsPrimaryContact: true,
	})
	for _, p := range req.Passengers {
		out = append(out, domain.Passenger{
			BookingID: bookingID,
			FullName:  p.FullName,
			Email:     p.Email,
			Phone:     p.Phone,
		})
	}
	return out
}
