package alerts

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/martatracker-data/internal/common/logger"
	"github.com/martatracker-data/internal/feed"
)

// Notifier receives a best-effort notification when a sync cycle fails.
type Notifier interface {
	SendAlert(title, description string) error
}

// Scheduler runs the ingestion pipeline on a fixed interval. Cycles are
// strictly sequential; the platform guarantee of at most one concurrent run
// per cursor is preserved by running everything on one goroutine.
type Scheduler struct {
	syncer   *Syncer
	interval time.Duration
	notifier Notifier
	logger   logger.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	running bool
}

func NewScheduler(syncer *Syncer, interval time.Duration, notifier Notifier, log logger.Logger) *Scheduler {
	return &Scheduler{
		syncer:   syncer,
		interval: interval,
		notifier: notifier,
		logger:   log,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("sync scheduler already running")
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true
	s.mu.Unlock()

	s.logger.Info("Starting sync scheduler", "interval", s.interval)

	// Initial cycle
	s.runCycle(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Sync scheduler stopped")
			return nil
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return fmt.Errorf("sync scheduler not running")
	}

	if s.cancel != nil {
		s.cancel()
	}

	s.running = false
	return nil
}

func (s *Scheduler) runCycle(ctx context.Context) {
	start := time.Now()
	err := s.syncer.Run(ctx)
	duration := time.Since(start)

	if err == nil {
		s.logger.Info("Sync cycle completed", "duration", duration)
		return
	}

	if errors.Is(err, feed.ErrUpstream) {
		// Cursor untouched; the next tick retries the same range.
		s.logger.Warn("Sync cycle hit upstream feed failure", "error", err, "duration", duration)
	} else {
		s.logger.Error("Sync cycle failed", "error", err, "duration", duration)
	}

	if s.notifier != nil {
		if nerr := s.notifier.SendAlert("Sync cycle failed", err.Error()); nerr != nil {
			s.logger.Warn("Failed to send failure notification", "error", nerr)
		}
	}
}
