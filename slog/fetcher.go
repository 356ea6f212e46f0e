package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/slowcrawl"
)

// Ensure LoggingFetcher implements slowcrawl.Fetcher.
var _ slowcrawl.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher logs every fetch at Debug and every failed fetch at Warn.
type LoggingFetcher struct {
	next   slowcrawl.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next slowcrawl.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		logOutcome(ctx, f.logger, "fetch", begin, err,
			slog.String("url", url),
			slog.Int("bytes", len(html)),
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
