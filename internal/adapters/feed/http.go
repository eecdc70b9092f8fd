package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"agendafeed/internal/domain"
)

// maxFeedBytes caps how much of a response body is read.
const maxFeedBytes = 32 << 20

type httpFetcher struct {
	client   *http.Client
	url      string
	maxBytes int64
}

// NewHTTPFetcher returns a fetcher that GETs the agenda document from url.
func NewHTTPFetcher(client *http.Client, url string) domain.FeedFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpFetcher{client: client, url: url, maxBytes: maxFeedBytes}
}

func (f *httpFetcher) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: feed returned status: %d", domain.ErrFeedUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read feed body: %w", domain.ErrFeedUnavailable, err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("%w: feed body exceeds %d bytes", domain.ErrFeedUnavailable, f.maxBytes)
	}
	return body, nil
}
