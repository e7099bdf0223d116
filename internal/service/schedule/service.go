package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ericfaux/dockslot-app-sub001/internal/domain"
	blackoutRepo "github.com/ericfaux/dockslot-app-sub001/internal/infra/storage/blackout"
	"github.com/ericfaux/dockslot-app-sub001/internal/service/schedule/models"
)

// Service manages a captain's weekly windows and blackout dates
type Service struct {
	windowRepo   WindowRepository
	blackoutRepo BlackoutRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService creates a new schedule service instance
func NewService(
	windowRepo WindowRepository,
	blackoutRepo BlackoutRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		windowRepo:   windowRepo,
		blackoutRepo: blackoutRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetWeek returns the weekly schedule, seeding the default week on first access
func (s *Service) GetWeek(ctx context.Context, captainID uuid.UUID) (*models.WeekResponse, error) {
	s.logger.Info("GetWeek: captain=%s", captainID)

	var windows []domain.AvailabilityWindow
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.windowRepo.EnsureDefaultWeek(txCtx, captainID); err != nil {
			return err
		}
		var err error
		windows, err = s.windowRepo.GetWeek(txCtx, captainID)
		return err
	})
	if err != nil {
		s.logger.Error("GetWeek: repository error for captain=%s: %v", captainID, err)
		return nil, fmt.Errorf("%w: GetWeek - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWeek(windows), nil
}

// UpdateWeek replaces all seven days at once; repeating the same payload is a no-op
func (s *Service) UpdateWeek(ctx context.Context, captainID uuid.UUID, req *models.UpdateWeekRequest) (*models.WeekResponse, error) {
	s.logger.Info("UpdateWeek: captain=%s, days=%d", captainID, len(req.Days))

	windows, err := validateWeek(req)
	if err != nil {
		s.logger.Warn("UpdateWeek: validation failed for captain=%s: %v", captainID, err)
		return nil, err
	}

	var saved []domain.AvailabilityWindow
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.windowRepo.UpsertWeek(txCtx, captainID, windows); err != nil {
			return err
		}
		var err error
		saved, err = s.windowRepo.GetWeek(txCtx, captainID)
		return err
	})
	if err != nil {
		s.logger.Error("UpdateWeek: repository error for captain=%s: %v", captainID, err)
		return nil, fmt.Errorf("%w: UpdateWeek - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateWeek: saved week for captain=%s", captainID)
	return models.FromDomainWeek(saved), nil
}

// ListBlackouts returns blackout dates on or after from (all when from is nil)
func (s *Service) ListBlackouts(ctx context.Context, captainID uuid.UUID, from *time.Time) (*models.BlackoutListResponse, error) {
	items, err := s.blackoutRepo.List(ctx, captainID, from)
	if err != nil {
		s.logger.Error("ListBlackouts: repository error for captain=%s: %v", captainID, err)
		return nil, fmt.Errorf("%w: ListBlackouts - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainBlackoutList(items), nil
}

// CreateBlackout closes a date regardless of the weekly windows
func (s *Service) CreateBlackout(ctx context.Context, captainID uuid.UUID, req *models.CreateBlackoutRequest) (*models.BlackoutResponse, error) {
	s.logger.Info("CreateBlackout: captain=%s, date=%s", captainID, req.Date)

	date, reason, err := validateBlackout(req)
	if err != nil {
		s.logger.Warn("CreateBlackout: validation failed: %v", err)
		return nil, err
	}

	created, err := s.blackoutRepo.Create(ctx, &domain.BlackoutDate{
		OwnerID:      captainID,
		BlackoutDate: date,
		Reason:       reason,
	})
	if err != nil {
		if errors.Is(err, blackoutRepo.ErrDuplicateBlackout) {
			s.logger.Warn("CreateBlackout: %s already blacked out for captain=%s", req.Date, captainID)
			return nil, ErrBlackoutExists
		}
		s.logger.Error("CreateBlackout: repository error for captain=%s: %v", captainID, err)
		return nil, fmt.Errorf("%w: CreateBlackout - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlackout(created), nil
}

// DeleteBlackout reopens a date
func (s *Service) DeleteBlackout(ctx context.Context, captainID, id uuid.UUID) error {
	s.logger.Info("DeleteBlackout: captain=%s, id=%s", captainID, id)

	if err := s.blackoutRepo.Delete(ctx, captainID, id); err != nil {
		if errors.Is(err, blackoutRepo.ErrBlackoutNotFound) {
			return ErrBlackoutNotFound
		}
		s.logger.Error("DeleteBlackout: repository error for captain=%s: %v", captainID, err)
		return fmt.Errorf("%w: DeleteBlackout - repository error: %v", ErrInternal, err)
	}
	return nil
}
