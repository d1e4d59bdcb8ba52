package store

import (
	"context"
	"fmt"

	"github.com/martatracker-data/internal/common/db"
)

var schemaStatements = []string{
	`CREATE SCHEMA IF NOT EXISTS alerts`,
	`CREATE TABLE IF NOT EXISTS alerts.active_alerts (
		route      text   NOT NULL,
		alert_text text   NOT NULL,
		created_at bigint NOT NULL,
		expires_at bigint NOT NULL,
		PRIMARY KEY (route, created_at)
	)`,
	`CREATE INDEX IF NOT EXISTS active_alerts_expires_at_idx
		ON alerts.active_alerts (expires_at)`,
	`CREATE TABLE IF NOT EXISTS alerts.sync_params (
		name  text PRIMARY KEY,
		value text NOT NULL
	)`,
}

// EnsureSchema creates the alert and parameter tables if they do not exist.
func EnsureSchema(ctx context.Context, database *db.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := database.DB().ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema statement: %w", err)
		}
	}
	return nil
}
