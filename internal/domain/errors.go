package domain

import "errors"

var (
	// ErrFeedUnavailable wraps transport failures while fetching the feed.
	ErrFeedUnavailable = errors.New("agenda feed unavailable")
	// ErrInvalidSelection is returned for day or tier values that are not
	// well-formed.
	ErrInvalidSelection = errors.New("invalid selection")
)
