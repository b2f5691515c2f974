// Package scheduler implements a tick-based periodic collection scheduler.
// It waits one baseline interval so rate-based collectors have a reference
// point, then samples at a fixed interval. The scheduler does NOT send data
// directly; it invokes a callback for every sample.
package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Guliveer/vitalis-live/internal/collector"
	"github.com/Guliveer/vitalis-live/internal/config"
	"github.com/Guliveer/vitalis-live/internal/models"
)

// collectTimeout bounds a single round of collectors.
const collectTimeout = 10 * time.Second

// Sampler produces one SystemMetric per call. *collector.Registry implements it.
type Sampler interface {
	Sample(ctx context.Context, hostID string, now time.Time) models.SystemMetric
}

var _ Sampler = (*collector.Registry)(nil)

// Scheduler manages periodic metric collection.
type Scheduler struct {
	sampler  Sampler
	hostID   string
	interval time.Duration
	baseline time.Duration
	logger   *zap.Logger

	onSample func(models.SystemMetric)
}

// New creates a new Scheduler reporting samples under hostID.
func New(sampler Sampler, hostID string, cfg config.AgentConfig, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		sampler:  sampler,
		hostID:   hostID,
		interval: cfg.Interval.Duration,
		baseline: cfg.Baseline.Duration,
		logger:   logger,
	}
}

// OnSample sets the callback invoked with every collected sample.
// The callback runs on the scheduler goroutine; ticks that fire while it is
// busy are dropped.
func (s *Scheduler) OnSample(fn func(models.SystemMetric)) {
	s.onSample = fn
}

// Start begins the collection loop. It blocks until the context is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	if s.baseline > 0 {
		s.logger.Debug("Waiting for baseline", zap.Duration("baseline", s.baseline))
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.baseline):
		}
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.collect(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.collect(ctx)
		}
	}
}

// collect runs all collectors with a timeout and hands the sample on.
func (s *Scheduler) collect(ctx context.Context) {
	collectCtx, cancel := context.WithTimeout(ctx, collectTimeout)
	defer cancel()

	sample := s.sampler.Sample(collectCtx, s.hostID, time.Now())
	if ctx.Err() != nil {
		return
	}

	s.logger.Debug("Collected metrics", zap.Int64("timestamp", sample.Timestamp))

	if s.onSample != nil {
		s.onSample(sample)
	}
}
