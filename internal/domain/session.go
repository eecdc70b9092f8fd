package domain

import (
	"strings"
	"time"
)

// CompactTagLimit is how many tags a compact session card shows.
const CompactTagLimit = 4

// SpeakerSummary is the speaker line shown on a session card.
type SpeakerSummary struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Company string `json:"company"`
}

// SessionLinks holds the optional URLs attached to a session.
type SessionLinks struct {
	Webinar      string `json:"webinar,omitempty"`
	Replay       string `json:"replay,omitempty"`
	Slack        string `json:"slack,omitempty"`
	Detail       string `json:"detail,omitempty"`
	Prerequisite string `json:"prerequisite,omitempty"`
}

// IsEmpty reports whether no link is set.
func (l SessionLinks) IsEmpty() bool {
	return l == SessionLinks{}
}

// SortKey orders sessions chronologically. EpochMillis is the absolute
// start instant when the feed provides one; Display is the
// lexically comparable start-time text used otherwise.
type SortKey struct {
	EpochMillis int64  `json:"epoch_millis,omitempty"`
	Display     string `json:"display,omitempty"`
}

// IsNumeric reports whether the key carries an absolute start instant.
func (k SortKey) IsNumeric() bool {
	return k.EpochMillis > 0
}

// CompareSortKeys returns -1, 0 or 1. Keys are compared numerically only
// when both sides are numeric; otherwise the display strings decide.
func CompareSortKeys(a, b SortKey) int {
	if a.IsNumeric() && b.IsNumeric() {
		switch {
		case a.EpochMillis < b.EpochMillis:
			return -1
		case a.EpochMillis > b.EpochMillis:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(a.Display, b.Display)
}

// Session is the canonical representation of one scheduled talk, whatever
// feed schema it was read from.
// swagger:model Session
type Session struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	Date             string           `json:"date"`
	StartTimeSortKey SortKey          `json:"start_time_sort_key"`
	DisplayStartTime string           `json:"display_start_time"`
	DisplayEndTime   string           `json:"display_end_time"`
	DurationMinutes  int              `json:"duration_minutes"`
	AccessTiers      []string         `json:"access_tiers"`
	Tags             []string         `json:"tags"`
	Speakers         []SpeakerSummary `json:"speakers"`
	SessionType      string           `json:"session_type,omitempty"`
	DifficultyLevel  string           `json:"difficulty_level,omitempty"`
	Location         string           `json:"location,omitempty"`
	Links            SessionLinks     `json:"links"`
	IsUnlockable     bool             `json:"is_unlockable"`
	IsHighlighted    bool             `json:"is_highlighted"`
	IsNetworking     bool             `json:"is_networking"`
	UpdatedAt        *time.Time       `json:"updated_at,omitempty"`
}

// CompactTags returns at most CompactTagLimit tags, in feed order.
func (s Session) CompactTags() []string {
	if len(s.Tags) <= CompactTagLimit {
		return s.Tags
	}
	return s.Tags[:CompactTagLimit]
}

// PrimarySpeaker returns the speaker used for compact display.
func (s Session) PrimarySpeaker() (SpeakerSummary, bool) {
	if len(s.Speakers) == 0 {
		return SpeakerSummary{}, false
	}
	return s.Speakers[0], true
}

// Agenda is the result of normalizing one feed document.
type Agenda struct {
	Sessions    []Session `json:"sessions"`
	Days        []string  `json:"days"`
	DefaultDay  string    `json:"default_day"`
	FeedVersion *int64    `json:"feed_version"`
	TierOptions []string  `json:"tier_options"`
}

// HasDay reports whether day is in the Day Index.
func (a Agenda) HasDay(day string) bool {
	for _, d := range a.Days {
		if d == day {
			return true
		}
	}
	return false
}
