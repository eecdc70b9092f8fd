package domain

import (
	"context"
	"time"
)

// DayLayout is the fixed-width calendar day format used for day keys.
const DayLayout = "2006-01-02"

// FreshnessLayout formats the "last refreshed" timestamp.
const FreshnessLayout = "Jan 2, 2006, 03:04 PM"

// Freshness is when the agenda data was last written by its publisher.
// swagger:model Freshness
type Freshness struct {
	At        time.Time `json:"at"`
	Formatted string    `json:"formatted"`
}

// AgendaView is everything a renderer needs for one screen.
// swagger:model AgendaView
type AgendaView struct {
	Sessions     []Session  `json:"sessions"`
	Days         []string   `json:"days"`
	SelectedDay  string     `json:"selected_day"`
	SelectedTier string     `json:"selected_tier"`
	TierOptions  []string   `json:"tier_options"`
	Freshness    *Freshness `json:"freshness"`
}

// ViewOverride replaces the remembered selection for a single view without
// persisting it. Nil fields keep the remembered value.
type ViewOverride struct {
	Day  *string
	Tier *string
}

// AgendaService owns the loaded agenda and serves filtered views of it.
type AgendaService interface {
	// Load fetches and normalizes the feed once; later calls are no-ops.
	Load(ctx context.Context) error
	// Reload discards the loaded agenda and fetches again.
	Reload(ctx context.Context) error
	View(ctx context.Context, clientID string, override ViewOverride) (*AgendaView, error)
	Days(ctx context.Context) (days []string, defaultDay string, err error)
	Freshness(ctx context.Context) (*Freshness, error)
	Selection(ctx context.Context, clientID string) (FilterSelection, error)
	// ChangeDay and ChangeTier are the renderer callbacks; both persist.
	ChangeDay(ctx context.Context, clientID, day string) (FilterSelection, error)
	ChangeTier(ctx context.Context, clientID, tier string) (FilterSelection, error)
}

// IsDayKey reports whether s is a YYYY-MM-DD calendar day.
func IsDayKey(s string) bool {
	if len(s) != len(DayLayout) {
		return false
	}
	_, err := time.Parse(DayLayout, s)
	return err == nil
}

// FormatDayLabel renders a day key as "May 13". Unparseable keys are
// returned unchanged.
func FormatDayLabel(day string) string {
	t, err := time.Parse(DayLayout, day)
	if err != nil {
		return day
	}
	return t.Format("January 2")
}
