package services

import (
	"bytes"
	"encoding/json"

	"agendafeed/internal/domain"
)

type feedVariant int

const (
	variantUnknown feedVariant = iota
	variantLegacy
	variantModern
)

func (v feedVariant) String() string {
	switch v {
	case variantLegacy:
		return "legacy"
	case variantModern:
		return "modern"
	default:
		return "unknown"
	}
}

// decodedFeed is the result of the single variant branch. Everything
// downstream works on records, never on the envelope shape.
type decodedFeed struct {
	variant feedVariant
	records []json.RawMessage
	data    *domain.FeedData
}

// decodeFeed detects the envelope variant. It never fails: input that is
// neither shape comes back as variantUnknown with no records.
func decodeFeed(raw []byte) decodedFeed {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return decodedFeed{}
	}

	switch trimmed[0] {
	case '[':
		var records []json.RawMessage
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return decodedFeed{}
		}
		return decodedFeed{variant: variantLegacy, records: records}
	case '{':
		var env domain.FeedEnvelope
		if err := json.Unmarshal(trimmed, &env); err != nil {
			return decodedFeed{}
		}
		payload := bytes.TrimSpace(env.Data)
		if !env.Success || len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
			return decodedFeed{}
		}
		var data domain.FeedData
		if err := json.Unmarshal(payload, &data); err != nil {
			return decodedFeed{}
		}
		return decodedFeed{variant: variantModern, records: data.Sessions, data: &data}
	default:
		return decodedFeed{}
	}
}
