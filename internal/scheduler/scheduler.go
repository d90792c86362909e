// Package scheduler runs the periodic background jobs: key rate refresh and health digests.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/finance-assistant/internal/config"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const jobTimeout = 5 * time.Minute

// KeyRateRefresher reloads the cached key rate.
type KeyRateRefresher interface {
	Refresh(ctx context.Context) (float64, error)
}

// DigestRunner sends the health digest to every user.
type DigestRunner interface {
	SendDigests(ctx context.Context) error
}

type Scheduler struct {
	cron    *cron.Cron
	rates   KeyRateRefresher
	digests DigestRunner
	log     *logrus.Entry
}

// New registers the key rate refresh every KeyRateTTL and the digest on DigestSchedule.
// An empty DigestSchedule disables the digest.
func New(cfg *config.Config, rates KeyRateRefresher, digests DigestRunner, log *logrus.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:    cron.New(),
		rates:   rates,
		digests: digests,
		log:     log.WithField("component", "scheduler"),
	}

	if rates != nil && cfg.KeyRateTTL > 0 {
		if _, err := s.cron.AddFunc("@every "+cfg.KeyRateTTL.String(), s.refreshKeyRate); err != nil {
			return nil, fmt.Errorf("failed to schedule key rate refresh: %w", err)
		}
	}
	if digests != nil && cfg.DigestSchedule != "" {
		if _, err := s.cron.AddFunc(cfg.DigestSchedule, s.sendDigests); err != nil {
			return nil, fmt.Errorf("invalid digest schedule %q: %w", cfg.DigestSchedule, err)
		}
	}
	return s, nil
}

// Start runs the scheduler in the background
func (s *Scheduler) Start() {
	s.log.Infof("Scheduler started with %d jobs", len(s.cron.Entries()))
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs to finish or ctx to expire
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warn("Scheduler stopped before running jobs finished")
	}
}

func (s *Scheduler) refreshKeyRate() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	if _, err := s.rates.Refresh(ctx); err != nil {
		s.log.Errorf("Key rate refresh failed: %v", err)
	}
}

func (s *Scheduler) sendDigests() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()
	start := time.Now()
	if err := s.digests.SendDigests(ctx); err != nil {
		s.log.Errorf("Digest run failed: %v", err)
		return
	}
	s.log.WithField("duration", time.Since(start).String()).Info("Digest run finished")
}
