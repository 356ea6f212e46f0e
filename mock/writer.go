package mock

import (
	"context"

	"github.com/fwojciec/slowcrawl"
)

var _ slowcrawl.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of slowcrawl.DocumentWriter.
type DocumentWriter struct {
	WriteDocumentFn func(ctx context.Context, doc *slowcrawl.Document) error
}

func (w *DocumentWriter) WriteDocument(ctx context.Context, doc *slowcrawl.Document) error {
	return w.WriteDocumentFn(ctx, doc)
}

var _ slowcrawl.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of slowcrawl.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, baseURL string) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	return s.DiscoverURLsFn(ctx, baseURL)
}
