package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"agendafeed/internal/domain"
)

// SelectionSchema creates the key/value table backing selection memory.
const SelectionSchema = `
	CREATE TABLE IF NOT EXISTS selection_preferences (
		client_id  TEXT        NOT NULL,
		pref_key   TEXT        NOT NULL,
		value      TEXT        NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		PRIMARY KEY (client_id, pref_key)
	)
`

type SelectionRepository struct {
	DB *sql.DB
}

func NewSelectionRepository(db *sql.DB) *SelectionRepository {
	return &SelectionRepository{
		DB: db,
	}
}

// EnsureSchema creates the selection table if it does not exist.
func (r *SelectionRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx, SelectionSchema)
	return err
}

func (r *SelectionRepository) Get(ctx context.Context, clientID, key string) (string, bool, error) {
	query := `
		SELECT value
		FROM selection_preferences
		WHERE client_id = $1 AND pref_key = $2
	`
	var value string
	err := r.DB.QueryRowContext(ctx, query, clientID, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (r *SelectionRepository) Set(ctx context.Context, clientID, key, value string) error {
	query := `
		INSERT INTO selection_preferences (client_id, pref_key, value, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (client_id, pref_key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`
	_, err := r.DB.ExecContext(ctx, query, clientID, key, value, time.Now().UTC())
	return err
}

var _ domain.SelectionRepository = (*SelectionRepository)(nil)
