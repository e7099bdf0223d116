package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/ericfaux/dockslot-app-sub001/internal/domain"
	bookingRepo "github.com/ericfaux/dockslot-app-sub001/internal/infra/storage/booking"
	guestTokenRepo "github.com/ericfaux/dockslot-app-sub001/internal/infra/storage/guesttoken"
	"github.com/ericfaux/dockslot-app-sub001/internal/service/bookings/models"
)

// Service works with existing bookings on behalf of captains and guests
type Service struct {
	bookingRepo   BookingRepository
	passengerRepo PassengerRepository
	tokenRepo     GuestTokenRepository
	auditRepo     AuditLogRepository
	outboxRepo    OutboxRepository
	txManager     TransactionManager
	clock         TimeProvider
	logger        Logger
}

// NewService creates a new booking service instance
func NewService(
	bookingRepo BookingRepository,
	passengerRepo PassengerRepository,
	tokenRepo GuestTokenRepository,
	auditRepo AuditLogRepository,
	outboxRepo OutboxRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		passengerRepo: passengerRepo,
		tokenRepo:     tokenRepo,
		auditRepo:     auditRepo,
		outboxRepo:    outboxRepo,
		txManager:     txManager,
		clock:         realTime{},
		logger:        logger,
	}
}

// GetByID returns a booking with its passengers; only its captain may see it
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, captainID uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for captain=%s", id, captainID)

	booking, err := s.getOwned(ctx, "GetByID", id, captainID)
	if err != nil {
		return nil, err
	}

	passengers, err := s.passengerRepo.ListByBooking(ctx, booking.ID)
	if err != nil {
		s.logger.Error("GetByID: failed to list passengers of booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - passengers: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking).WithPassengers(passengers), nil
}

// GetByGuestToken returns the booking behind a guest management link.
// Unknown and expired tokens are both reported as ErrBookingNotFound.
func (s *Service) GetByGuestToken(ctx context.Context, token string) (*models.BookingResponse, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", ErrInvalidInput)
	}

	guestToken, err := s.tokenRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, guestTokenRepo.ErrTokenNotFound) {
			s.logger.Warn("GetByGuestToken: unknown token")
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByGuestToken: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetByGuestToken - repository error: %v", ErrInternal, err)
	}

	if guestToken.IsExpired(s.clock.Now()) {
		s.logger.Warn("GetByGuestToken: token for booking id=%s expired at %s", guestToken.BookingID, guestToken.ExpiresAt)
		return nil, ErrBookingNotFound
	}

	booking, err := s.bookingRepo.GetByID(ctx, guestToken.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByGuestToken: repository error for booking id=%s: %v", guestToken.BookingID, err)
		return nil, fmt.Errorf("%w: GetByGuestToken - repository error: %v", ErrInternal, err)
	}

	passengers, err := s.passengerRepo.ListByBooking(ctx, booking.ID)
	if err != nil {
		s.logger.Error("GetByGuestToken: failed to list passengers of booking id=%s: %v", booking.ID, err)
		return nil, fmt.Errorf("%w: GetByGuestToken - passengers: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking).WithPassengers(passengers), nil
}

// GetCaptainBookings lists a captain's bookings.
// Without a status filter completed, cancelled and no-show bookings are
// hidden unless IncludeInactive is set.
func (s *Service) GetCaptainBookings(ctx context.Context, req *models.GetCaptainBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCaptainBookings: captain=%s, status=%v, includeInactive=%t", req.CaptainID, req.Status, req.IncludeInactive)

	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetCaptainBookings: invalid filter for captain=%s: %v", req.CaptainID, err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByCaptainWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetCaptainBookings: repository error for captain=%s: %v", req.CaptainID, err)
		return nil, fmt.Errorf("%w: GetCaptainBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCaptainBookings: fetched %d bookings for captain=%s", len(bookings), req.CaptainID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel cancels a booking with a reason. The change, the audit entry and the
// outbox event are written in one transaction.
func (s *Service) Cancel(ctx context.Context, bookingID uuid.UUID, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%s by captain=%s", bookingID, req.CaptainID)

	if utf8.RuneCountInString(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation_reason must be at most %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getOwned(txCtx, "Cancel", bookingID, req.CaptainID)
		if err != nil {
			return err
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("Cancel: booking id=%s cannot be cancelled, status=%s", bookingID, booking.Status)
			return ErrCannotCancel
		}

		if err := s.bookingRepo.Cancel(txCtx, bookingID, req.CancellationReason); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("Cancel: repository error for booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: Cancel - repository error: %w", ErrInternal, err)
		}

		previous := booking.Status
		booking.Status = domain.StatusCancelled
		if err := s.record(txCtx, booking, previous, domain.AuditBookingCancelled, domain.EventBookingCancelled,
			map[string]interface{}{"reason": req.CancellationReason}); err != nil {
			return err
		}

		s.logger.Info("Cancel: cancelled booking id=%s", bookingID)
		return nil
	})
}

// UpdateStatus moves a booking along its lifecycle; cancellation goes through Cancel
func (s *Service) UpdateStatus(ctx context.Context, bookingID uuid.UUID, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%s to status=%s by captain=%s", bookingID, req.Status, req.CaptainID)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%s", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}
	if newStatus == domain.StatusCancelled {
		return fmt.Errorf("%w: use the cancel operation to cancel a booking", ErrInvalidTransition)
	}

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getOwned(txCtx, "UpdateStatus", bookingID, req.CaptainID)
		if err != nil {
			return err
		}

		if !booking.CanTransitionTo(newStatus) {
			s.logger.Warn("UpdateStatus: booking id=%s cannot move from %s to %s", bookingID, booking.Status, newStatus)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, bookingID, newStatus); err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrBookingNotFound):
				return ErrBookingNotFound
			case errors.Is(err, bookingRepo.ErrSlotNotAvailable):
				return ErrSlotNotAvailable
			}
			s.logger.Error("UpdateStatus: repository error for booking id=%s: %v", bookingID, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %w", ErrInternal, err)
		}

		previous := booking.Status
		booking.Status = newStatus
		if err := s.record(txCtx, booking, previous, domain.AuditBookingStatusChanged, domain.EventBookingStatusChanged,
			map[string]interface{}{"from": previous, "to": newStatus}); err != nil {
			return err
		}

		s.logger.Info("UpdateStatus: booking id=%s moved from %s to %s", bookingID, previous, newStatus)
		return nil
	})
}

// Helpers

// getOwned loads a booking (locked when ctx carries a transaction) and checks the captain owns it
func (s *Service) getOwned(ctx context.Context, op string, id, captainID uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}

	if booking.CaptainID != captainID {
		s.logger.Warn("%s: captain=%s has no access to booking id=%s", op, captainID, id)
		return nil, ErrAccessDenied
	}

	return booking, nil
}

// record writes the audit entry and the outbox event of a booking change
func (s *Service) record(
	ctx context.Context,
	booking *domain.Booking,
	previous domain.BookingStatus,
	action domain.AuditAction,
	eventType string,
	details map[string]interface{},
) error {
	if err := s.auditRepo.Create(ctx, &domain.AuditLogEntry{
		BookingID: booking.ID,
		CaptainID: booking.CaptainID,
		Action:    action,
		Details:   details,
	}); err != nil {
		s.logger.Error("record: audit log for booking id=%s: %v", booking.ID, err)
		return fmt.Errorf("%w: audit log: %w", ErrInternal, err)
	}

	payload, err := json.Marshal(domain.BookingEventPayload{
		BookingID:        booking.ID,
		CaptainID:        booking.CaptainID,
		TripTypeID:       booking.TripTypeID,
		Status:           booking.Status,
		PreviousStatus:   previous,
		ConfirmationCode: booking.ConfirmationCode,
		ScheduledStart:   booking.ScheduledStart,
		ScheduledEnd:     booking.ScheduledEnd,
		GuestEmail:       booking.GuestEmail,
		OccurredAt:       s.clock.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrInternal, err)
	}

	if err := s.outboxRepo.Insert(ctx, &domain.OutboxEvent{
		AggregateType: domain.AggregateBooking,
		AggregateID:   booking.ID,
		EventType:     eventType,
		Payload:       payload,
	}); err != nil {
		s.logger.Error("record: outbox event for booking id=%s: %v", booking.ID, err)
		return fmt.Errorf("%w: outbox: %w", ErrInternal, err)
	}

	return nil
}
