package maintenance

import (
	"context"
	"fmt"
	"time"

	"github.com/martatracker-data/internal/common/db"
	"github.com/martatracker-data/internal/common/logger"
)

// Maintenance handles physical cleanup of expired alert rows. Reads already
// filter expired rows out, so the sweep only reclaims space.
type Maintenance struct {
	db     *db.DB
	logger logger.Logger
}

// New creates a new Maintenance instance
func New(database *db.DB, logger logger.Logger) *Maintenance {
	return &Maintenance{
		db:     database,
		logger: logger,
	}
}

// CleanupExpiredAlerts deletes rows whose TTL has passed and reports how many
// were removed.
func (m *Maintenance) CleanupExpiredAlerts(ctx context.Context) (int64, error) {
	m.logger.Debug("Starting cleanup of expired alert rows")

	result, err := m.db.DB().ExecContext(ctx,
		`DELETE FROM alerts.active_alerts WHERE expires_at <= $1`, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("deleting expired alerts: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted alerts: %w", err)
	}

	if deleted > 0 {
		m.logger.Info("Cleaned up expired alert rows", "records_deleted", deleted)
	}

	return deleted, nil
}
