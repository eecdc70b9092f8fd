package feed

import (
	"context"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"agendafeed/internal/domain"
)

type fileFetcher struct {
	path string
}

// NewFileFetcher returns a fetcher for an agenda snapshot on disk. Hand-kept
// snapshots may carry // comments and trailing commas; they are stripped
// before the document reaches the normalizer.
func NewFileFetcher(path string) domain.FeedFetcher {
	return &fileFetcher{path: path}
}

func (f *fileFetcher) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFeedUnavailable, err)
	}
	return jsonc.ToJSON(data), nil
}

type staticFetcher struct {
	data []byte
}

// NewStaticFetcher serves a document compiled into the binary.
func NewStaticFetcher(data []byte) domain.FeedFetcher {
	return &staticFetcher{data: data}
}

func (f *staticFetcher) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return jsonc.ToJSON(f.data), nil
}
