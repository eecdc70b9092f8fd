package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"agendafeed/internal/domain"
)

// AgendaConfig carries the event-level choices the agenda service needs.
type AgendaConfig struct {
	// FallbackTier labels records that carry no access tier.
	FallbackTier string
	// FallbackDay is selected when neither memory, the feed, nor today
	// picks a day.
	FallbackDay string
	// Location is the event's fixed timezone.
	Location *time.Location
	// Now defaults to time.Now.
	Now     func() time.Time
	Timeout time.Duration
}

type agendaService struct {
	logger         *slog.Logger
	fetcher        domain.FeedFetcher
	memory         domain.SelectionMemory
	normalizer     *Normalizer
	location       *time.Location
	fallbackDay    string
	now            func() time.Time
	contextTimeout time.Duration

	mu        sync.Mutex
	loaded    bool
	agenda    domain.Agenda
	freshness *domain.Freshness
}

func NewAgendaService(logger *slog.Logger, fetcher domain.FeedFetcher, memory domain.SelectionMemory, cfg AgendaConfig) domain.AgendaService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &agendaService{
		logger:         logger,
		fetcher:        fetcher,
		memory:         memory,
		normalizer:     NewNormalizer(logger, cfg.FallbackTier, cfg.Location),
		location:       cfg.Location,
		fallbackDay:    cfg.FallbackDay,
		now:            cfg.Now,
		contextTimeout: cfg.Timeout,
		agenda:         emptyAgenda(),
	}
}

func emptyAgenda() domain.Agenda {
	return domain.Agenda{Sessions: []domain.Session{}, Days: []string{}, TierOptions: tierOptions(nil)}
}

// Load holds the lock across the fetch, so a second caller waits for the
// first and then finds the agenda already loaded. A failed fetch still
// counts as loaded: the agenda stays empty until Reload.
func (s *agendaService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}
	return s.loadLocked(ctx)
}

func (s *agendaService) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	return s.loadLocked(ctx)
}

func (s *agendaService) loadLocked(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	raw, err := s.fetcher.Fetch(ctx)
	s.loaded = true
	if err != nil {
		s.agenda = emptyAgenda()
		s.freshness = nil
		s.logger.ErrorContext(ctx, "agenda fetch failed", "err", err)
		return fmt.Errorf("load agenda: %w", err)
	}

	s.agenda = s.normalizer.Normalize(raw)
	s.freshness = DeriveFreshness(raw, s.location)
	s.logger.InfoContext(ctx, "agenda loaded",
		"sessions", len(s.agenda.Sessions),
		"days", len(s.agenda.Days),
		"default_day", s.agenda.DefaultDay,
	)
	return nil
}

// snapshot loads on first use. The returned agenda is never mutated; a
// Reload swaps in a new value.
func (s *agendaService) snapshot(ctx context.Context) (domain.Agenda, *domain.Freshness) {
	// Load failures are logged inside and surface as an empty agenda.
	_ = s.Load(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.agenda, s.freshness
}

func (s *agendaService) View(ctx context.Context, clientID string, override domain.ViewOverride) (*domain.AgendaView, error) {
	agenda, freshness := s.snapshot(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sel := s.remembered(ctx, clientID)
	sel.Day = s.resolveDay(agenda, sel.Day)
	if override.Day != nil {
		sel.Day = strings.TrimSpace(*override.Day)
	}
	if override.Tier != nil {
		sel.AccessTier = canonicalTier(*override.Tier)
	}

	return &domain.AgendaView{
		Sessions:     FilterSessions(agenda.Sessions, sel),
		Days:         agenda.Days,
		SelectedDay:  sel.Day,
		SelectedTier: sel.AccessTier,
		TierOptions:  agenda.TierOptions,
		Freshness:    freshness,
	}, nil
}

func (s *agendaService) Days(ctx context.Context) ([]string, string, error) {
	agenda, _ := s.snapshot(ctx)
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}
	return agenda.Days, s.resolveDay(agenda, ""), nil
}

func (s *agendaService) Freshness(ctx context.Context) (*domain.Freshness, error) {
	_, freshness := s.snapshot(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return freshness, nil
}

// Selection returns the effective selection: the remembered one, with the
// default day filled in when no day is remembered.
func (s *agendaService) Selection(ctx context.Context, clientID string) (domain.FilterSelection, error) {
	agenda, _ := s.snapshot(ctx)
	if err := ctx.Err(); err != nil {
		return domain.FilterSelection{}, err
	}
	sel := s.remembered(ctx, clientID)
	sel.Day = s.resolveDay(agenda, sel.Day)
	return sel, nil
}

func (s *agendaService) ChangeDay(ctx context.Context, clientID, day string) (domain.FilterSelection, error) {
	day = strings.TrimSpace(day)
	if day != "" && !domain.IsDayKey(day) {
		return domain.FilterSelection{}, fmt.Errorf("%w: day %q is not YYYY-MM-DD", domain.ErrInvalidSelection, day)
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sel, err := s.memory.Load(ctx, clientID)
	if err != nil {
		return domain.FilterSelection{}, fmt.Errorf("change day: %w", err)
	}
	if err := s.memory.SaveDay(ctx, clientID, day); err != nil {
		return domain.FilterSelection{}, fmt.Errorf("change day: %w", err)
	}
	sel.Day = day
	return sel, nil
}

func (s *agendaService) ChangeTier(ctx context.Context, clientID, tier string) (domain.FilterSelection, error) {
	if strings.TrimSpace(tier) == "" {
		return domain.FilterSelection{}, fmt.Errorf("%w: tier is required", domain.ErrInvalidSelection)
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sel, err := s.memory.Load(ctx, clientID)
	if err != nil {
		return domain.FilterSelection{}, fmt.Errorf("change tier: %w", err)
	}
	sel.AccessTier = canonicalTier(tier)
	if err := s.memory.SaveTier(ctx, clientID, sel.AccessTier); err != nil {
		return domain.FilterSelection{}, fmt.Errorf("change tier: %w", err)
	}
	return sel, nil
}

// remembered falls back to the default selection when memory is
// unreadable, so a broken store still yields a view. The change callbacks
// read memory directly and report the error instead.
func (s *agendaService) remembered(ctx context.Context, clientID string) domain.FilterSelection {
	sel, err := s.memory.Load(ctx, clientID)
	if err != nil {
		s.logger.WarnContext(ctx, "selection memory unavailable", "client_id", clientID, "err", err)
		return domain.DefaultFilterSelection()
	}
	return sel
}

// resolveDay picks the day to show. A remembered day is kept even when the
// Day Index no longer has it; the view is then empty until the user picks
// again. Without one: the feed's default, today in the event timezone, the
// configured fallback, then the first day, each only if indexed.
func (s *agendaService) resolveDay(agenda domain.Agenda, remembered string) string {
	if remembered != "" {
		return remembered
	}
	candidates := []string{
		agenda.DefaultDay,
		s.now().In(s.location).Format(domain.DayLayout),
		s.fallbackDay,
	}
	for _, day := range candidates {
		if day != "" && agenda.HasDay(day) {
			return day
		}
	}
	if len(agenda.Days) > 0 {
		return agenda.Days[0]
	}
	return ""
}

func canonicalTier(tier string) string {
	tier = strings.TrimSpace(tier)
	if tier == "" {
		return domain.TierAll
	}
	if renamed, ok := domain.LegacyTierTokens[tier]; ok {
		return renamed
	}
	return tier
}
