package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/slowcrawl"
)

// Ensure LoggingRobotsGate implements slowcrawl.RobotsGate.
var _ slowcrawl.RobotsGate = (*LoggingRobotsGate)(nil)

// LoggingRobotsGate wraps a RobotsGate with logging.
type LoggingRobotsGate struct {
	next   slowcrawl.RobotsGate
	logger *slog.Logger
}

// NewLoggingRobotsGate creates a new LoggingRobotsGate.
func NewLoggingRobotsGate(next slowcrawl.RobotsGate, logger *slog.Logger) *LoggingRobotsGate {
	return &LoggingRobotsGate{next: next, logger: logger}
}

// CanFetch delegates to the wrapped gate and logs the decision.
func (g *LoggingRobotsGate) CanFetch(ctx context.Context, url string) (allowed bool) {
	defer func(begin time.Time) {
		logOutcome(ctx, g.logger, "robots check", begin, nil,
			slog.String("url", url),
			slog.Bool("allowed", allowed),
		)
	}(time.Now())
	return g.next.CanFetch(ctx, url)
}
