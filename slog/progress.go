package slog

import (
	"log/slog"

	"github.com/fwojciec/slowcrawl/crawl"
)

// NewProgressLogger returns a crawl.ProgressFunc that logs batch progress.
// Per-link admissions are logged at debug level.
func NewProgressLogger(logger *slog.Logger) crawl.ProgressFunc {
	return func(event crawl.ProgressEvent) {
		logger := logger.With("batch", event.BatchID)
		switch event.Type {
		case crawl.ProgressStarted:
			logger.Info("batch started")
		case crawl.ProgressYielded:
			logger.Info("fetched", "url", event.URL)
		case crawl.ProgressSkipped:
			logger.Info("skipped", "url", event.URL, "err", event.Error)
		case crawl.ProgressEnqueued:
			logger.Debug("enqueued", "url", event.URL)
		case crawl.ProgressBlocked:
			logger.Info("blocked by robots.txt", "url", event.URL)
		case crawl.ProgressFinished:
			r := event.Result
			attrs := []any{
				"yielded", r.Yielded,
				"skipped", r.Skipped,
				"enqueued", r.Enqueued,
				"blocked", r.Blocked,
			}
			if event.Error != nil {
				logger.Error("batch finished", append(attrs, "err", event.Error)...)
				return
			}
			logger.Info("batch finished", attrs...)
		}
	}
}
