package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/slowcrawl"
)

// Ensure LoggingLinkExtractor implements slowcrawl.LinkExtractor.
var _ slowcrawl.LinkExtractor = (*LoggingLinkExtractor)(nil)

// LoggingLinkExtractor wraps a LinkExtractor with logging.
type LoggingLinkExtractor struct {
	next   slowcrawl.LinkExtractor
	logger *slog.Logger
}

// NewLoggingLinkExtractor creates a new LoggingLinkExtractor.
func NewLoggingLinkExtractor(next slowcrawl.LinkExtractor, logger *slog.Logger) *LoggingLinkExtractor {
	return &LoggingLinkExtractor{next: next, logger: logger}
}

// ExtractLinks delegates to the wrapped extractor and logs the operation.
func (e *LoggingLinkExtractor) ExtractLinks(text string, baseURL string) (links []string, err error) {
	defer func(begin time.Time) {
		logOutcome(context.Background(), e.logger, "extract links", begin, err,
			slog.String("url", baseURL),
			slog.Int("count", len(links)),
		)
	}(time.Now())
	return e.next.ExtractLinks(text, baseURL)
}
