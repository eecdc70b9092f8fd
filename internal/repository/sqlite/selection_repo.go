package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"agendafeed/internal/domain"
)

const schema = `
	CREATE TABLE IF NOT EXISTS selection_preferences (
		client_id  TEXT NOT NULL,
		pref_key   TEXT NOT NULL,
		value      TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (client_id, pref_key)
	)
`

// SelectionRepository keeps selection memory in a local SQLite file.
type SelectionRepository struct {
	conn *sql.DB
}

// Open creates the database file (and its directory) if needed and
// initializes the schema.
func Open(dbPath string) (*SelectionRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite only supports one writer
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(time.Hour)

	if _, err := conn.Exec(schema); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SelectionRepository{conn: conn}, nil
}

func (r *SelectionRepository) Close() error {
	return r.conn.Close()
}

func (r *SelectionRepository) Get(ctx context.Context, clientID, key string) (string, bool, error) {
	var value string
	err := r.conn.QueryRowContext(ctx,
		`SELECT value FROM selection_preferences WHERE client_id = ? AND pref_key = ?`,
		clientID, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (r *SelectionRepository) Set(ctx context.Context, clientID, key, value string) error {
	_, err := r.conn.ExecContext(ctx, `
		INSERT INTO selection_preferences (client_id, pref_key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (client_id, pref_key) DO UPDATE
		SET value = excluded.value, updated_at = excluded.updated_at
	`, clientID, key, value, time.Now().UTC().Format(time.RFC3339))
	return err
}

var _ domain.SelectionRepository = (*SelectionRepository)(nil)
