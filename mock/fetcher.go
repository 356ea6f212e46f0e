package mock

import (
	"context"

	"github.com/fwojciec/slowcrawl"
)

var _ slowcrawl.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of slowcrawl.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ slowcrawl.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of slowcrawl.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(text string, baseURL string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(text string, baseURL string) ([]string, error) {
	return e.ExtractLinksFn(text, baseURL)
}

var _ slowcrawl.RobotsGate = (*RobotsGate)(nil)

// RobotsGate is a mock implementation of slowcrawl.RobotsGate.
type RobotsGate struct {
	CanFetchFn func(ctx context.Context, url string) bool
}

func (g *RobotsGate) CanFetch(ctx context.Context, url string) bool {
	return g.CanFetchFn(ctx, url)
}
