package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/martatracker-data/internal/common/db"
)

// ParamStore is the durable single-value store backing the fetch cursor and
// the feed credential.
type ParamStore struct {
	db *db.DB
}

func NewParamStore(database *db.DB) *ParamStore {
	return &ParamStore{db: database}
}

// Get looks up a named parameter. A missing parameter is a normal empty
// result, reported through found, not an error.
func (s *ParamStore) Get(ctx context.Context, name string) (string, bool, error) {
	var value string
	err := s.db.DB().QueryRowContext(ctx,
		`SELECT value FROM alerts.sync_params WHERE name = $1`, name).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading parameter %s: %w", name, err)
	}
	return value, true, nil
}

// Put writes a named parameter, overwriting any previous value.
func (s *ParamStore) Put(ctx context.Context, name, value string) error {
	query := `
		INSERT INTO alerts.sync_params (name, value)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value
	`
	if _, err := s.db.DB().ExecContext(ctx, query, name, value); err != nil {
		return fmt.Errorf("writing parameter %s: %w", name, err)
	}
	return nil
}
