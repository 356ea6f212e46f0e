// Package slog provides logging decorators for the crawl capabilities and a
// progress logger for crawl batches.
package slog

import (
	"context"
	"log/slog"
	"time"
)

// logOutcome logs a completed call at Debug, or at Warn with the error
// attached when err is non-nil.
func logOutcome(ctx context.Context, logger *slog.Logger, msg string, begin time.Time, err error, attrs ...slog.Attr) {
	level := slog.LevelDebug
	attrs = append(attrs, slog.Duration("duration", time.Since(begin)))
	if err != nil {
		level = slog.LevelWarn
		attrs = append(attrs, slog.Any("err", err))
	}
	logger.LogAttrs(ctx, level, msg, attrs...)
}
