// Package scheduler runs periodic maintenance jobs for saved loan scenarios.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/loan-service/internal/config"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const pruneTimeout = time.Minute

// Pruner deletes scenarios older than a given age
type Pruner interface {
	PruneOlderThan(ctx context.Context, age time.Duration) (int64, error)
}

// Scheduler owns the retention cron job
type Scheduler struct {
	cron   *cron.Cron
	pruner Pruner
	maxAge time.Duration
	log    *logrus.Logger
}

// New builds the retention job from config. With RETENTION_DAYS=0 the
// scheduler is disabled and Run only waits for cancellation.
func New(cfg *config.Config, pruner Pruner, log *logrus.Logger) (*Scheduler, error) {
	s := &Scheduler{
		pruner: pruner,
		maxAge: time.Duration(cfg.RetentionDays) * 24 * time.Hour,
		log:    log,
	}
	if cfg.RetentionDays == 0 {
		return s, nil
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.RetentionSchedule, s.RunOnce); err != nil {
		return nil, fmt.Errorf("invalid RETENTION_SCHEDULE %q: %w", cfg.RetentionSchedule, err)
	}
	s.cron = c
	return s, nil
}

// Enabled reports whether the retention job is scheduled
func (s *Scheduler) Enabled() bool {
	return s.cron != nil
}

// Run starts the cron loop and blocks until ctx is cancelled, then waits for
// a running job to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	if !s.Enabled() {
		<-ctx.Done()
		return nil
	}

	s.log.WithField("max_age", s.maxAge.String()).Info("Retention scheduler started")
	s.cron.Start()
	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.log.Info("Retention scheduler stopped")
	return nil
}

// RunOnce prunes expired scenarios immediately
func (s *Scheduler) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), pruneTimeout)
	defer cancel()

	if _, err := s.pruner.PruneOlderThan(ctx, s.maxAge); err != nil {
		s.log.Errorf("Retention job failed: %v", err)
	}
}
