package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fastygo/taskmaster/repository"
)

// SessionSweeper periodically deletes expired sessions from a store without native expiry.
type SessionSweeper struct {
	store  repository.SessionPurger
	logger *zap.Logger
	cron   *cron.Cron
	now    func() time.Time
}

// NewSessionSweeper schedules a sweep using a cron expression such as "@every 10m".
func NewSessionSweeper(store repository.SessionPurger, schedule string, logger *zap.Logger) (*SessionSweeper, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if schedule == "" {
		schedule = "@every 10m"
	}

	s := &SessionSweeper{
		store:  store,
		logger: logger,
		cron:   cron.New(),
		now:    time.Now,
	}
	if _, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if _, err := s.Sweep(ctx); err != nil {
			s.logger.Error("session sweep failed", zap.Error(err))
		}
	}); err != nil {
		return nil, err
	}
	return s, nil
}

// Start launches the cron scheduler.
func (s *SessionSweeper) Start() {
	if s == nil {
		return
	}
	s.cron.Start()
	s.logger.Info("session sweeper started")
}

// Stop waits for a running sweep or for ctx, whichever ends first.
func (s *SessionSweeper) Stop(ctx context.Context) {
	if s == nil {
		return
	}
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	s.logger.Info("session sweeper stopped")
}

// Sweep runs one purge synchronously.
func (s *SessionSweeper) Sweep(ctx context.Context) (int, error) {
	removed, err := s.store.PurgeExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Info("expired sessions purged", zap.Int("count", removed))
	}
	return removed, nil
}
