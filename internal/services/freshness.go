package services

import (
	"encoding/json"
	"time"

	"agendafeed/internal/domain"
)

// DeriveFreshness returns when the feed data was last written, formatted
// in the event timezone loc, or nil when that cannot be known.
//
// A modern envelope's data.version wins outright. Otherwise the latest
// per-record _updatedAt is used, ignoring records without one.
func DeriveFreshness(raw []byte, loc *time.Location) *domain.Freshness {
	if loc == nil {
		loc = time.UTC
	}
	feed := decodeFeed(raw)
	if feed.variant == variantUnknown {
		return nil
	}

	if v := feedVersion(feed.data); v != nil {
		return newFreshness(time.UnixMilli(*v), loc)
	}

	var latest time.Time
	for _, rec := range feed.records {
		var r domain.FeedSessionRecord
		if err := json.Unmarshal(rec, &r); err != nil {
			continue
		}
		t, ok := parseTimestamp(r.UpdatedAt)
		if !ok {
			continue
		}
		if t.After(latest) {
			latest = t
		}
	}
	if latest.IsZero() {
		return nil
	}
	return newFreshness(latest, loc)
}

func newFreshness(t time.Time, loc *time.Location) *domain.Freshness {
	local := t.In(loc)
	return &domain.Freshness{At: local, Formatted: local.Format(domain.FreshnessLayout)}
}
