// Package app wires configuration into the agenda service for the server
// and CLI entry points.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"agendafeed/config"
	"agendafeed/data"
	"agendafeed/internal/adapters/feed"
	"agendafeed/internal/domain"
	"agendafeed/internal/repository/postgres"
	"agendafeed/internal/repository/sqlite"
	"agendafeed/internal/services"
)

// NewFetcher picks the feed source: FEED_URL, then FEED_PATH, then the
// embedded snapshot.
func NewFetcher(cfg *config.Config) domain.FeedFetcher {
	switch {
	case cfg.FeedURL != "":
		return feed.NewHTTPFetcher(&http.Client{Timeout: cfg.RequestTimeout}, cfg.FeedURL)
	case cfg.FeedPath != "":
		return feed.NewFileFetcher(cfg.FeedPath)
	default:
		return feed.NewStaticFetcher(data.Agenda)
	}
}

// OpenSelectionRepository opens Postgres when DATABASE_URL is set and the
// local SQLite file otherwise. The returned func closes the store.
func OpenSelectionRepository(ctx context.Context, cfg *config.Config) (domain.SelectionRepository, func() error, error) {
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		repo := postgres.NewSelectionRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ensure selection schema: %w", err)
		}
		return repo, db.Close, nil
	}

	repo, err := sqlite.Open(cfg.SelectionDBPath)
	if err != nil {
		return nil, nil, err
	}
	return repo, repo.Close, nil
}

// NewAgendaService builds the agenda service from configuration.
func NewAgendaService(logger *slog.Logger, cfg *config.Config, fetcher domain.FeedFetcher, repo domain.SelectionRepository) domain.AgendaService {
	return services.NewAgendaService(logger, fetcher, services.NewSelectionMemory(logger, repo), services.AgendaConfig{
		FallbackTier: cfg.FallbackTier,
		FallbackDay:  cfg.FallbackDay,
		Location:     cfg.EventTimezone,
		Timeout:      cfg.RequestTimeout,
	})
}
