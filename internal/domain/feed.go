package domain

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// FeedFetcher retrieves the raw agenda document (or a test double).
type FeedFetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// FeedEnvelope is the modern `{success, data}` wrapper. Data stays raw
// until the envelope is known to be modern.
type FeedEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

// FeedData is the payload of a modern envelope. Sessions are kept raw so
// each record can be decoded (and rejected) on its own.
//
// Decoding is lenient: only a payload that is not a JSON object fails.
// A field of the wrong type is read as absent.
type FeedData struct {
	Version     *float64
	Sessions    []json.RawMessage
	Dates       []FeedDate
	DateIndex   *int
	TicketTypes []FeedOption
}

// FeedDate is one entry of the modern day list.
type FeedDate struct {
	Key string
}

// FeedOption is a selectable value advertised by the modern feed.
type FeedOption struct {
	Key   string
	Value string
}

// FeedSpeaker is a speaker entry on a modern record.
type FeedSpeaker struct {
	Name     string
	JobTitle string
	Company  string
}

// FeedSessionRecord is the union of every field a session record has
// carried across feed versions. Absent or mistyped fields decode to zero
// values; numbers and booleans sent as strings are parsed.
type FeedSessionRecord struct {
	// Legacy fields.
	LegacyID       string
	UpdatedAt      string
	Access         string
	TalkTitle      string
	Subtrack       string
	SpeakerName    string
	SpeakerTitle   string
	SpeakerCompany string
	TimerStartTime string
	TopicTag1      string
	TopicTag2      string
	TopicTag3      string
	TopicTag4      string
	Difficulty     string

	// Modern fields.
	UniqueID                 string
	Key                      string
	Title                    string
	Description              string
	Tags                     []string
	Date                     string
	StartTime                string
	Duration                 *float64
	UTCStartTimeMilliseconds *float64
	UTCEndTimeMilliseconds   *float64
	DisplayStartTime         string
	DisplayEndTime           string
	Location                 string
	SessionLevel             string
	SessionType              string
	TicketTypes              []string
	Speakers                 []FeedSpeaker
	IsHighlighted            bool
	IsNetworking             bool

	// Present in both versions with the same shape.
	DetailLink   string
	WebinarLink  string
	ReplayLink   string
	SlackURL     string
	Prerequisite string
	Unlockable   bool
}

var errNotObject = errors.New("not a JSON object")

// UnmarshalJSON accepts any JSON object. It fails only when data is not one.
func (d *FeedData) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	*d = FeedData{
		Version:   f.number("version"),
		Sessions:  f.array("sessions"),
		DateIndex: f.integer("dateIndex"),
	}
	for _, raw := range f.array("dates") {
		if key := rawString(raw); key != "" {
			d.Dates = append(d.Dates, FeedDate{Key: key})
			continue
		}
		if df, err := decodeFields(raw); err == nil {
			d.Dates = append(d.Dates, FeedDate{Key: df.str("key")})
		}
	}
	for _, raw := range f.array("ticketTypes") {
		if v := rawString(raw); v != "" {
			d.TicketTypes = append(d.TicketTypes, FeedOption{Key: v, Value: v})
			continue
		}
		if of, err := decodeFields(raw); err == nil {
			d.TicketTypes = append(d.TicketTypes, FeedOption{Key: of.str("key"), Value: of.str("value")})
		}
	}
	return nil
}

// UnmarshalJSON accepts any JSON object. It fails only when data is not one.
func (r *FeedSessionRecord) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}
	*r = FeedSessionRecord{
		LegacyID:       f.str("_id"),
		UpdatedAt:      f.str("_updatedAt"),
		Access:         f.str("access"),
		TalkTitle:      f.str("talkTitle"),
		Subtrack:       f.str("subtrack"),
		SpeakerName:    f.str("speakerName"),
		SpeakerTitle:   f.str("speakerTitle"),
		SpeakerCompany: f.str("speakerCompany"),
		TimerStartTime: f.str("timerStartTime"),
		TopicTag1:      f.str("topicTag1"),
		TopicTag2:      f.str("topicTag2"),
		TopicTag3:      f.str("topicTag3"),
		TopicTag4:      f.str("topicTag4"),
		Difficulty:     f.str("difficulty"),

		UniqueID:                 f.str("uniqueId"),
		Key:                      f.str("key"),
		Title:                    f.str("title"),
		Description:              f.str("description"),
		Tags:                     f.strs("tags"),
		Date:                     f.str("date"),
		StartTime:                f.str("startTime"),
		Duration:                 f.number("duration"),
		UTCStartTimeMilliseconds: f.number("utcStartTimeMilliseconds"),
		UTCEndTimeMilliseconds:   f.number("utcEndTimeMilliseconds"),
		DisplayStartTime:         f.str("displayStartTime"),
		DisplayEndTime:           f.str("displayEndTime"),
		Location:                 f.str("location"),
		SessionLevel:             f.str("sessionLevel"),
		SessionType:              f.str("sessionType"),
		TicketTypes:              f.strs("ticketTypes"),
		IsHighlighted:            f.boolean("isHighlighted"),
		IsNetworking:             f.boolean("isNetworking"),

		DetailLink:   f.str("detailLink"),
		WebinarLink:  f.str("webinarLink"),
		ReplayLink:   f.str("replayLink"),
		SlackURL:     f.str("slackUrl"),
		Prerequisite: f.str("prerequisite"),
		Unlockable:   f.boolean("unlockable"),
	}
	for _, raw := range f.array("speakers") {
		if name := rawString(raw); name != "" {
			r.Speakers = append(r.Speakers, FeedSpeaker{Name: name})
			continue
		}
		if sf, err := decodeFields(raw); err == nil {
			r.Speakers = append(r.Speakers, FeedSpeaker{
				Name:     sf.str("name"),
				JobTitle: sf.str("jobTitle"),
				Company:  sf.str("company"),
			})
		}
	}
	return nil
}

// jsonFields is one JSON object with its values left undecoded.
type jsonFields map[string]json.RawMessage

func decodeFields(data []byte) (jsonFields, error) {
	var f jsonFields
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if f == nil {
		return nil, errNotObject
	}
	return f, nil
}

func (f jsonFields) str(key string) string {
	return rawString(f[key])
}

// rawString reads a string, or the literal text of a number.
func rawString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strings.TrimSpace(string(raw))
	}
	return ""
}

// number reads a number, or a string holding one.
func (f jsonFields) number(key string) *float64 {
	raw, ok := f[key]
	if !ok {
		return nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return &n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil
	}
	return &n
}

func (f jsonFields) integer(key string) *int {
	n := f.number(key)
	if n == nil || *n != math.Trunc(*n) || math.Abs(*n) > math.MaxInt32 {
		return nil
	}
	i := int(*n)
	return &i
}

// boolean reads a bool, or a string strconv.ParseBool accepts.
func (f jsonFields) boolean(key string) bool {
	raw, ok := f[key]
	if !ok {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return false
	}
	b, _ = strconv.ParseBool(strings.TrimSpace(s))
	return b
}

// array returns the elements of an array value, or nil for anything else.
func (f jsonFields) array(key string) []json.RawMessage {
	raw, ok := f[key]
	if !ok {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	return items
}

// strs reads a list of strings. A lone string counts as a one-element list
// and non-string elements are skipped.
func (f jsonFields) strs(key string) []string {
	if s := f.str(key); s != "" {
		return []string{s}
	}
	var out []string
	for _, raw := range f.array(key) {
		if s := rawString(raw); s != "" {
			out = append(out, s)
		}
	}
	return out
}
