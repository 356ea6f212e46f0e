package slog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/slowcrawl/crawl"
	slowslog "github.com/fwojciec/slowcrawl/slog"
	"github.com/stretchr/testify/assert"
)

func TestNewProgressLogger(t *testing.T) {
	t.Parallel()

	t.Run("logs blocked outlinks", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		progress := slowslog.NewProgressLogger(slog.New(slog.NewTextHandler(&buf, nil)))

		progress(crawl.ProgressEvent{Type: crawl.ProgressBlocked, BatchID: "b1", URL: "https://example.com/private"})

		output := buf.String()
		assert.Contains(t, output, "blocked by robots.txt")
		assert.Contains(t, output, "url=https://example.com/private")
		assert.Contains(t, output, "batch=b1")
	})

	t.Run("logs skipped URL with error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		progress := slowslog.NewProgressLogger(slog.New(slog.NewTextHandler(&buf, nil)))

		progress(crawl.ProgressEvent{Type: crawl.ProgressSkipped, URL: "https://example.com/a", Error: errors.New("HTTP 404")})

		output := buf.String()
		assert.Contains(t, output, "skipped")
		assert.Contains(t, output, "err=\"HTTP 404\"")
	})

	t.Run("logs enqueued outlinks only at debug level", func(t *testing.T) {
		t.Parallel()

		var info, debug bytes.Buffer
		quiet := slowslog.NewProgressLogger(slog.New(slog.NewTextHandler(&info, nil)))
		verbose := slowslog.NewProgressLogger(slog.New(slog.NewTextHandler(&debug, &slog.HandlerOptions{Level: slog.LevelDebug})))

		event := crawl.ProgressEvent{Type: crawl.ProgressEnqueued, URL: "https://example.com/b"}
		quiet(event)
		verbose(event)

		assert.Empty(t, info.String())
		assert.Contains(t, debug.String(), "enqueued")
	})

	t.Run("logs batch summary", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		progress := slowslog.NewProgressLogger(slog.New(slog.NewTextHandler(&buf, nil)))

		progress(crawl.ProgressEvent{
			Type:   crawl.ProgressFinished,
			Result: crawl.Result{Yielded: 3, Skipped: 1, Enqueued: 5, Blocked: 2},
		})

		output := buf.String()
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, "batch finished")
		assert.Contains(t, output, "yielded=3")
		assert.Contains(t, output, "blocked=2")
	})

	t.Run("logs flush failure as error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		progress := slowslog.NewProgressLogger(slog.New(slog.NewTextHandler(&buf, nil)))

		progress(crawl.ProgressEvent{Type: crawl.ProgressFinished, Error: errors.New("flush ledger: disk full")})

		output := buf.String()
		assert.Contains(t, output, "level=ERROR")
		assert.Contains(t, output, "disk full")
	})
}
