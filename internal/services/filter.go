package services

import (
	"slices"

	"agendafeed/internal/domain"
)

// FilterSessions applies the day stage, then the access-tier stage, then a
// stable sort by start time. The input slice is never modified; the result
// is always a fresh slice.
func FilterSessions(sessions []domain.Session, sel domain.FilterSelection) []domain.Session {
	out := make([]domain.Session, 0, len(sessions))
	for _, s := range sessions {
		if sel.Day != "" && s.Date != sel.Day {
			continue
		}
		if !domain.AccessTierHierarchy.Admits(sel.AccessTier, s.AccessTiers) {
			continue
		}
		out = append(out, s)
	}
	slices.SortStableFunc(out, func(a, b domain.Session) int {
		return domain.CompareSortKeys(a.StartTimeSortKey, b.StartTimeSortKey)
	})
	return out
}
