package triptypes

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	profileRepo "github.com/ericfaux/dockslot-app-sub001/internal/infra/storage/profile"
	tripTypeRepo "github.com/ericfaux/dockslot-app-sub001/internal/infra/storage/triptype"
)

// Service lists and removes trip types
type Service struct {
	tripTypeRepo TripTypeRepository
	profileRepo  ProfileRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService creates a new trip type service instance
func NewService(tripTypeRepo TripTypeRepository, profileRepo ProfileRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		tripTypeRepo: tripTypeRepo,
		profileRepo:  profileRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// ListActive returns the trip types a guest can book
func (s *Service) ListActive(ctx context.Context, captainID uuid.UUID) (*ListResponse, error) {
	if _, err := s.profileRepo.GetByID(ctx, captainID); err != nil {
		if errors.Is(err, profileRepo.ErrProfileNotFound) {
			return nil, ErrCaptainNotFound
		}
		s.logger.Error("ListActive: failed to get profile id=%s: %v", captainID, err)
		return nil, fmt.Errorf("%w: ListActive - profile: %v", ErrInternal, err)
	}

	items, err := s.tripTypeRepo.ListActiveByOwner(ctx, captainID)
	if err != nil {
		s.logger.Error("ListActive: repository error for captain=%s: %v", captainID, err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}

	resp := &ListResponse{TripTypes: make([]TripTypeResponse, 0, len(items))}
	for _, t := range items {
		resp.TripTypes = append(resp.TripTypes, fromDomain(t))
	}
	return resp, nil
}

// Delete removes a trip type. One referenced by any booking, whatever its
// status, is only deactivated so its bookings keep a valid reference.
func (s *Service) Delete(ctx context.Context, captainID, id uuid.UUID) (*DeleteResult, error) {
	s.logger.Info("Delete: trip type id=%s by captain=%s", id, captainID)

	result := &DeleteResult{ID: id}
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// the row lock orders this against bookings being inserted for the trip type
		tripType, err := s.tripTypeRepo.GetByIDForUpdate(txCtx, id)
		if err != nil {
			if errors.Is(err, tripTypeRepo.ErrTripTypeNotFound) {
				return ErrTripTypeNotFound
			}
			return fmt.Errorf("%w: Delete - get: %w", ErrInternal, err)
		}
		if tripType.OwnerID != captainID {
			s.logger.Warn("Delete: captain=%s has no access to trip type id=%s", captainID, id)
			return ErrAccessDenied
		}

		count, err := s.tripTypeRepo.CountBookings(txCtx, id)
		if err != nil {
			return fmt.Errorf("%w: Delete - count bookings: %w", ErrInternal, err)
		}

		if count > 0 {
			if err := s.tripTypeRepo.Deactivate(txCtx, id); err != nil {
				return fmt.Errorf("%w: Delete - deactivate: %w", ErrInternal, err)
			}
			result.Deactivated = true
			s.logger.Info("Delete: trip type id=%s has %d bookings, deactivated", id, count)
			return nil
		}

		if err := s.tripTypeRepo.Delete(txCtx, id); err != nil {
			return fmt.Errorf("%w: Delete - delete: %w", ErrInternal, err)
		}
		s.logger.Info("Delete: trip type id=%s deleted", id)
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("Delete: %v", err)
		}
		return nil, err
	}

	return result, nil
}
