package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

const jobTimeout = 5 * time.Minute

// TokenRepository deletes guest tokens by expiry
type TokenRepository interface {
	DeleteExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realTime struct{}

func (realTime) Now() time.Time { return time.Now() }

// Scheduler runs periodic maintenance on a seconds-precision cron
type Scheduler struct {
	cron          *cron.Cron
	tokens        TokenRepository
	clock         TimeProvider
	logger        Logger
	purgeSchedule string
	retention     time.Duration
}

// NewScheduler creates the maintenance job scheduler
func NewScheduler(tokens TokenRepository, logger Logger, purgeSchedule string, retentionDays int) *Scheduler {
	return &Scheduler{
		cron:          cron.New(cron.WithSeconds()),
		tokens:        tokens,
		clock:         realTime{},
		logger:        logger,
		purgeSchedule: purgeSchedule,
		retention:     time.Duration(retentionDays) * 24 * time.Hour,
	}
}

// Start registers the jobs and starts the cron loop
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.purgeSchedule, s.purgeExpiredTokensJob); err != nil {
		return fmt.Errorf("jobs: schedule token purge %q: %w", s.purgeSchedule, err)
	}
	s.cron.Start()
	s.logger.Info("Jobs: scheduler started (token purge: %s)", s.purgeSchedule)
	return nil
}

// Stop waits for running jobs to finish or ctx to expire
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("Jobs: scheduler stopped")
	case <-ctx.Done():
		s.logger.Error("Jobs: scheduler stop timed out")
	}
}

func (s *Scheduler) purgeExpiredTokensJob() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if _, err := s.PurgeExpiredTokens(ctx); err != nil {
		s.logger.Error("Jobs: purge expired guest tokens: %v", err)
	}
}

// PurgeExpiredTokens deletes guest tokens that expired more than the retention period ago
func (s *Scheduler) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	cutoff := s.clock.Now().Add(-s.retention)
	deleted, err := s.tokens.DeleteExpiredBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	s.logger.Info("Jobs: purged %d guest tokens expired before %s", deleted, cutoff.Format(time.RFC3339))
	return deleted, nil
}
