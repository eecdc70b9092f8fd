package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"agendafeed/internal/domain"
)

// displayTimeLayout matches the "9:00 AM" strings the feed publishes.
const displayTimeLayout = "3:04 PM"

// Normalizer converts either feed variant into canonical sessions.
type Normalizer struct {
	logger       *slog.Logger
	fallbackTier string
	location     *time.Location
}

// NewNormalizer returns a Normalizer. fallbackTier is assigned to records
// without any tier (domain.DefaultFallbackTier when empty); loc is the
// event timezone used to derive days and display times from epochs.
func NewNormalizer(logger *slog.Logger, fallbackTier string, loc *time.Location) *Normalizer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if fallbackTier == "" {
		fallbackTier = domain.DefaultFallbackTier
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Normalizer{logger: logger, fallbackTier: fallbackTier, location: loc}
}

// Normalize never fails. Unrecognized documents yield an empty Agenda and
// individual bad records are dropped with a warning.
func (n *Normalizer) Normalize(raw []byte) domain.Agenda {
	feed := decodeFeed(raw)
	agenda := domain.Agenda{
		Sessions:    []domain.Session{},
		Days:        []string{},
		TierOptions: tierOptions(feed.data),
	}
	if feed.variant == variantUnknown {
		n.logger.Warn("unrecognized agenda feed", "bytes", len(raw))
		return agenda
	}

	seen := make(map[string]struct{}, len(feed.records))
	for i, rec := range feed.records {
		var r domain.FeedSessionRecord
		if err := json.Unmarshal(rec, &r); err != nil {
			n.logger.Warn("dropping feed record", "index", i, "reason", "decode", "err", err)
			continue
		}
		s, reason := n.normalizeRecord(r, i)
		if reason != "" {
			n.logger.Warn("dropping feed record", "index", i, "reason", reason)
			continue
		}
		if _, dup := seen[s.ID]; dup {
			n.logger.Warn("dropping feed record", "index", i, "reason", "duplicate id", "id", s.ID)
			continue
		}
		seen[s.ID] = struct{}{}
		agenda.Sessions = append(agenda.Sessions, s)
	}

	agenda.Days = dayIndex(feed.data, agenda.Sessions)
	agenda.DefaultDay = feedDefaultDay(feed.data)
	agenda.FeedVersion = feedVersion(feed.data)

	n.logger.Debug("normalized agenda feed",
		"variant", feed.variant.String(),
		"records", len(feed.records),
		"sessions", len(agenda.Sessions),
		"days", len(agenda.Days),
	)
	return agenda
}

// normalizeRecord returns the canonical session, or a non-empty reason
// when the record must be dropped.
func (n *Normalizer) normalizeRecord(r domain.FeedSessionRecord, index int) (domain.Session, string) {
	title := firstNonEmpty(r.Title, r.TalkTitle)
	if title == "" {
		return domain.Session{}, "missing title"
	}

	startMillis := epochMillis(r.UTCStartTimeMilliseconds)
	endMillis := epochMillis(r.UTCEndTimeMilliseconds)

	date := parseDayKey(r.Date)
	if date == "" && startMillis > 0 {
		date = time.UnixMilli(startMillis).In(n.location).Format(domain.DayLayout)
	}
	if date == "" {
		return domain.Session{}, "missing date"
	}

	id := firstNonEmpty(r.UniqueID, r.LegacyID, r.Key)
	if id == "" {
		id = fmt.Sprintf("session-%d", index+1)
	}

	displayStart := strings.TrimSpace(r.DisplayStartTime)
	if displayStart == "" && startMillis > 0 {
		displayStart = time.UnixMilli(startMillis).In(n.location).Format(displayTimeLayout)
	}
	if displayStart == "" {
		displayStart = firstNonEmpty(r.StartTime, r.TimerStartTime)
	}
	displayEnd := strings.TrimSpace(r.DisplayEndTime)
	if displayEnd == "" && endMillis > 0 {
		displayEnd = time.UnixMilli(endMillis).In(n.location).Format(displayTimeLayout)
	}

	s := domain.Session{
		ID:          id,
		Title:       title,
		Description: r.Description,
		Date:        date,
		StartTimeSortKey: domain.SortKey{
			EpochMillis: startMillis,
			Display:     firstNonEmpty(r.TimerStartTime, displayStart, r.StartTime),
		},
		DisplayStartTime: displayStart,
		DisplayEndTime:   displayEnd,
		DurationMinutes:  durationMinutes(r.Duration, startMillis, endMillis),
		AccessTiers:      n.accessTiers(r),
		Tags:             sessionTags(r),
		Speakers:         speakerSummaries(r),
		SessionType:      firstNonEmpty(r.SessionType, r.Subtrack),
		DifficultyLevel:  firstNonEmpty(r.SessionLevel, r.Difficulty),
		Location:         strings.TrimSpace(r.Location),
		Links: domain.SessionLinks{
			Webinar:      strings.TrimSpace(r.WebinarLink),
			Replay:       strings.TrimSpace(r.ReplayLink),
			Slack:        strings.TrimSpace(r.SlackURL),
			Detail:       strings.TrimSpace(r.DetailLink),
			Prerequisite: strings.TrimSpace(r.Prerequisite),
		},
		IsUnlockable:  r.Unlockable,
		IsHighlighted: r.IsHighlighted,
		IsNetworking:  r.IsNetworking,
	}
	if t, ok := parseTimestamp(r.UpdatedAt); ok {
		s.UpdatedAt = &t
	}
	return s, ""
}

func (n *Normalizer) accessTiers(r domain.FeedSessionRecord) []string {
	if tiers := nonBlank(r.TicketTypes); len(tiers) > 0 {
		return tiers
	}
	if access := strings.TrimSpace(r.Access); access != "" {
		return []string{access}
	}
	return []string{n.fallbackTier}
}

func sessionTags(r domain.FeedSessionRecord) []string {
	if tags := nonBlank(r.Tags); len(tags) > 0 {
		return tags
	}
	return nonBlank([]string{r.TopicTag1, r.TopicTag2, r.TopicTag3, r.TopicTag4})
}

func speakerSummaries(r domain.FeedSessionRecord) []domain.SpeakerSummary {
	out := []domain.SpeakerSummary{}
	for _, sp := range r.Speakers {
		name := strings.TrimSpace(sp.Name)
		if name == "" {
			continue
		}
		out = append(out, domain.SpeakerSummary{
			Name:    name,
			Title:   strings.TrimSpace(sp.JobTitle),
			Company: strings.TrimSpace(sp.Company),
		})
	}
	if len(out) > 0 {
		return out
	}
	if name := strings.TrimSpace(r.SpeakerName); name != "" {
		out = append(out, domain.SpeakerSummary{
			Name:    name,
			Title:   strings.TrimSpace(r.SpeakerTitle),
			Company: strings.TrimSpace(r.SpeakerCompany),
		})
	}
	return out
}

func durationMinutes(duration *float64, startMillis, endMillis int64) int {
	if duration != nil && !math.IsNaN(*duration) {
		if *duration < 0 {
			return 0
		}
		return int(math.Round(*duration))
	}
	if startMillis > 0 && endMillis > startMillis {
		return int((endMillis - startMillis) / int64(time.Minute/time.Millisecond))
	}
	return 0
}

// dayIndex prefers the feed's own day list and order; otherwise it
// collects distinct session dates in ascending order.
func dayIndex(data *domain.FeedData, sessions []domain.Session) []string {
	days := []string{}
	seen := make(map[string]struct{})
	if data != nil {
		for _, d := range data.Dates {
			key := strings.TrimSpace(d.Key)
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			days = append(days, key)
		}
		if len(days) > 0 {
			return days
		}
	}
	for _, s := range sessions {
		if _, ok := seen[s.Date]; ok {
			continue
		}
		seen[s.Date] = struct{}{}
		days = append(days, s.Date)
	}
	sort.Strings(days)
	return days
}

func feedDefaultDay(data *domain.FeedData) string {
	if data == nil || data.DateIndex == nil {
		return ""
	}
	i := *data.DateIndex
	if i < 0 || i >= len(data.Dates) {
		return ""
	}
	return strings.TrimSpace(data.Dates[i].Key)
}

func feedVersion(data *domain.FeedData) *int64 {
	if data == nil {
		return nil
	}
	v := epochMillis(data.Version)
	if v == 0 {
		return nil
	}
	return &v
}

// tierOptions lists "All" followed by the feed's advertised ticket types,
// or the fixed option list when the feed advertises none.
func tierOptions(data *domain.FeedData) []string {
	if data != nil {
		opts := []string{domain.TierAll}
		seen := map[string]struct{}{domain.TierAll: {}}
		for _, o := range data.TicketTypes {
			v := firstNonEmpty(o.Value, o.Key)
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			opts = append(opts, v)
		}
		if len(opts) > 1 {
			return opts
		}
	}
	return append([]string(nil), domain.AccessTierOptions...)
}

var humanDayLayouts = []string{"1/2/2006", "January 2, 2006", "Jan 2, 2006"}

// parseDayKey accepts a day key, a full timestamp starting with one, or a
// few human layouts seen in older snapshots.
func parseDayKey(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if len(s) >= len(domain.DayLayout) && domain.IsDayKey(s[:len(domain.DayLayout)]) {
		return s[:len(domain.DayLayout)]
	}
	for _, layout := range humanDayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(domain.DayLayout)
		}
	}
	return ""
}

var timestampLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"}

// parseTimestamp reads a record update timestamp. Bare integers are epoch
// milliseconds.
func parseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil && ms > 0 {
		return time.UnixMilli(ms), true
	}
	return time.Time{}, false
}

func epochMillis(v *float64) int64 {
	if v == nil || math.IsNaN(*v) || *v <= 0 {
		return 0
	}
	return int64(*v)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func nonBlank(values []string) []string {
	out := []string{}
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
