package domain

// TierAll selects sessions of every access tier.
const TierAll = "All"

// DefaultFallbackTier is assigned to records that carry no tier at all.
const DefaultFallbackTier = "General"

// AccessTierOptions is the tier list offered when the feed does not
// advertise its own.
var AccessTierOptions = []string{TierAll, "General", "Premium", "Platinum", "Gold"}

// TierHierarchy maps an umbrella tier to the tiers it also admits.
type TierHierarchy map[string][]string

// AccessTierHierarchy is the fixed umbrella table. Tiers not listed admit
// only themselves.
var AccessTierHierarchy = TierHierarchy{
	"Gold": {"Premium", "General"},
}

// Admits reports whether selecting the tier `selected` shows a session
// labelled with tiers.
func (h TierHierarchy) Admits(selected string, tiers []string) bool {
	if selected == "" || selected == TierAll {
		return true
	}
	for _, t := range tiers {
		if t == selected {
			return true
		}
		for _, sub := range h[selected] {
			if t == sub {
				return true
			}
		}
	}
	return false
}
