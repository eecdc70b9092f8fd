package services

import (
	"context"
	"fmt"
	"log/slog"

	"agendafeed/internal/domain"
)

type selectionMemory struct {
	logger *slog.Logger
	repo   domain.SelectionRepository
}

// NewSelectionMemory stores FilterSelections as two independent keys in repo.
func NewSelectionMemory(logger *slog.Logger, repo domain.SelectionRepository) domain.SelectionMemory {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &selectionMemory{logger: logger, repo: repo}
}

// Load returns the remembered selection. A missing day stays "" and a
// missing tier becomes domain.TierAll. Renamed tier tokens are rewritten
// and the new value is written back so the migration happens once.
func (m *selectionMemory) Load(ctx context.Context, clientID string) (domain.FilterSelection, error) {
	sel := domain.DefaultFilterSelection()

	day, ok, err := m.repo.Get(ctx, clientID, domain.SelectionKeyDay)
	if err != nil {
		return sel, fmt.Errorf("load selected day: %w", err)
	}
	if ok {
		sel.Day = day
	}

	tier, ok, err := m.repo.Get(ctx, clientID, domain.SelectionKeyTier)
	if err != nil {
		return sel, fmt.Errorf("load selected tier: %w", err)
	}
	if ok && tier != "" {
		if renamed, legacy := domain.LegacyTierTokens[tier]; legacy {
			if err := m.repo.Set(ctx, clientID, domain.SelectionKeyTier, renamed); err != nil {
				m.logger.WarnContext(ctx, "tier migration not persisted", "client_id", clientID, "from", tier, "to", renamed, "err", err)
			}
			tier = renamed
		}
		sel.AccessTier = tier
	}
	return sel, nil
}

// Save writes both keys.
func (m *selectionMemory) Save(ctx context.Context, clientID string, sel domain.FilterSelection) error {
	if err := m.SaveDay(ctx, clientID, sel.Day); err != nil {
		return err
	}
	return m.SaveTier(ctx, clientID, sel.AccessTier)
}

// SaveDay writes only the day key.
func (m *selectionMemory) SaveDay(ctx context.Context, clientID, day string) error {
	if err := m.repo.Set(ctx, clientID, domain.SelectionKeyDay, day); err != nil {
		return fmt.Errorf("save selected day: %w", err)
	}
	return nil
}

// SaveTier writes only the tier key. An empty tier is stored as
// domain.TierAll.
func (m *selectionMemory) SaveTier(ctx context.Context, clientID, tier string) error {
	if tier == "" {
		tier = domain.TierAll
	}
	if err := m.repo.Set(ctx, clientID, domain.SelectionKeyTier, tier); err != nil {
		return fmt.Errorf("save selected tier: %w", err)
	}
	return nil
}
