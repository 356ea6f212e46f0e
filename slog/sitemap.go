package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/slowcrawl"
)

// Ensure LoggingSitemapService implements slowcrawl.SitemapService.
var _ slowcrawl.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService logs each discovery with the number of URLs found.
type LoggingSitemapService struct {
	next   slowcrawl.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService creates a new LoggingSitemapService.
func NewLoggingSitemapService(next slowcrawl.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

// DiscoverURLs delegates to the wrapped service and logs the operation.
func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string) (urls []string, err error) {
	defer func(begin time.Time) {
		logOutcome(ctx, s.logger, "sitemap discovery", begin, err,
			slog.String("url", baseURL),
			slog.Int("count", len(urls)),
		)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL)
}
