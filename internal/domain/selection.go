package domain

import "context"

// Selection memory keys. Names and LegacyTierTokens are a versioned
// contract with stores written by earlier releases.
const (
	SelectionKeyDay  = "agenda.v1.selected-day"
	SelectionKeyTier = "agenda.v1.ticket-type-filter"
)

// LegacyTierTokens rewrites renamed tier values found in stored selections.
var LegacyTierTokens = map[string]string{
	"All Access": TierAll,
}

// FilterSelection is the user's day and access-tier choice. An empty Day
// means every day.
// swagger:model FilterSelection
type FilterSelection struct {
	Day        string `json:"day"`
	AccessTier string `json:"access_tier"`
}

// DefaultFilterSelection has no day and every tier.
func DefaultFilterSelection() FilterSelection {
	return FilterSelection{Day: "", AccessTier: TierAll}
}

// SelectionRepository is a durable string key/value store scoped by client.
type SelectionRepository interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, clientID, key string) (string, bool, error)
	Set(ctx context.Context, clientID, key, value string) error
}

// SelectionMemory remembers the last FilterSelection of each client. Day
// and tier are stored under separate keys and can be written alone.
type SelectionMemory interface {
	Load(ctx context.Context, clientID string) (FilterSelection, error)
	Save(ctx context.Context, clientID string, sel FilterSelection) error
	SaveDay(ctx context.Context, clientID, day string) error
	SaveTier(ctx context.Context, clientID, tier string) error
}
