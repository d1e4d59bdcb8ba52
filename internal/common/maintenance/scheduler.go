package maintenance

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/martatracker-data/internal/common/db"
	"github.com/martatracker-data/internal/common/logger"
)

// CleanupScheduler periodically sweeps expired alert rows.
type CleanupScheduler struct {
	maintenance *Maintenance
	logger      logger.Logger
	interval    time.Duration

	mu        sync.RWMutex
	isRunning bool
	cancelFn  context.CancelFunc
}

// NewCleanupScheduler creates a new cleanup scheduler
func NewCleanupScheduler(database *db.DB, logger logger.Logger, interval time.Duration) *CleanupScheduler {
	return &CleanupScheduler{
		maintenance: New(database, logger),
		logger:      logger,
		interval:    interval,
	}
}

// Start begins the cleanup scheduling
func (s *CleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cleanup scheduler is already running")
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancelFn = cancel
	s.isRunning = true

	s.logger.Info("Starting cleanup scheduler", "interval", s.interval)

	go s.cleanupLoop(ctx)

	return nil
}

// Stop stops the cleanup scheduler
func (s *CleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	s.logger.Info("Stopping cleanup scheduler")

	if s.cancelFn != nil {
		s.cancelFn()
	}

	s.isRunning = false
}

// IsRunning returns whether the scheduler is active
func (s *CleanupScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

func (s *CleanupScheduler) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Run initial cleanup after a short delay
	initialDelay := time.NewTimer(1 * time.Minute)
	defer initialDelay.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Cleanup loop stopping")
			return

		case <-initialDelay.C:
			s.performCleanup(ctx)

		case <-ticker.C:
			s.performCleanup(ctx)
		}
	}
}

func (s *CleanupScheduler) performCleanup(ctx context.Context) {
	start := time.Now()
	deleted, err := s.maintenance.CleanupExpiredAlerts(ctx)
	duration := time.Since(start)

	if err != nil {
		s.logger.Error("Alert cleanup failed", "error", err, "duration", duration)
	} else {
		s.logger.Debug("Alert cleanup completed", "records_deleted", deleted, "duration", duration)
	}
}
