package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/martatracker-data/internal/alerts"
	"github.com/martatracker-data/internal/common/db"
)

// AlertStore persists alert rows in Postgres. A row is keyed by route plus
// creation time, so one route accumulates one row per processed post and
// replaying a post overwrites its own row. Expired rows are filtered out of
// every read; physical deletion is left to the maintenance sweep.
type AlertStore struct {
	db *db.DB
}

func NewAlertStore(database *db.DB) *AlertStore {
	return &AlertStore{db: database}
}

func (s *AlertStore) Put(ctx context.Context, rec alerts.Record) error {
	query := `
		INSERT INTO alerts.active_alerts (route, alert_text, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (route, created_at)
		DO UPDATE SET alert_text = EXCLUDED.alert_text, expires_at = EXCLUDED.expires_at
	`
	_, err := s.db.DB().ExecContext(ctx, query,
		rec.Route, rec.Text, rec.CreatedAt.Unix(), rec.ExpiresAt.Unix())
	if err != nil {
		return fmt.Errorf("inserting alert row: %w", err)
	}
	return nil
}

func (s *AlertStore) QueryByRoute(ctx context.Context, route string) ([]alerts.Record, error) {
	query := `
		SELECT route, alert_text, created_at, expires_at
		FROM alerts.active_alerts
		WHERE route = $1 AND expires_at > $2
		ORDER BY created_at DESC
	`
	rows, err := s.db.DB().QueryContext(ctx, query, route, time.Now().Unix())
	if err != nil {
		return nil, fmt.Errorf("querying alerts by route: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func (s *AlertStore) ScanAll(ctx context.Context) ([]alerts.Record, error) {
	query := `
		SELECT route, alert_text, created_at, expires_at
		FROM alerts.active_alerts
		WHERE expires_at > $1
	`
	rows, err := s.db.DB().QueryContext(ctx, query, time.Now().Unix())
	if err != nil {
		return nil, fmt.Errorf("scanning alerts: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]alerts.Record, error) {
	var records []alerts.Record
	for rows.Next() {
		var (
			rec     alerts.Record
			created int64
			expires int64
		)
		if err := rows.Scan(&rec.Route, &rec.Text, &created, &expires); err != nil {
			return nil, fmt.Errorf("scanning alert row: %w", err)
		}
		rec.CreatedAt = time.Unix(created, 0).UTC()
		rec.ExpiresAt = time.Unix(expires, 0).UTC()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating alert rows: %w", err)
	}
	return records, nil
}
