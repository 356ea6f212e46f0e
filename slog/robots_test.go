package slog_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/slowcrawl/mock"
	slowslog "github.com/fwojciec/slowcrawl/slog"
	"github.com/stretchr/testify/assert"
)

func TestLoggingRobotsGate_CanFetch(t *testing.T) {
	t.Parallel()

	t.Run("logs allowed decision", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := debugLogger(&buf)
		inner := &mock.RobotsGate{
			CanFetchFn: func(_ context.Context, _ string) bool { return true },
		}

		gate := slowslog.NewLoggingRobotsGate(inner, logger)

		assert.True(t, gate.CanFetch(context.Background(), "https://example.com/a"))
		output := buf.String()
		assert.Contains(t, output, "robots check")
		assert.Contains(t, output, "url=https://example.com/a")
		assert.Contains(t, output, "allowed=true")
	})

	t.Run("logs denied decision", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := debugLogger(&buf)
		inner := &mock.RobotsGate{
			CanFetchFn: func(_ context.Context, _ string) bool { return false },
		}

		gate := slowslog.NewLoggingRobotsGate(inner, logger)

		assert.False(t, gate.CanFetch(context.Background(), "https://example.com/private"))
		assert.Contains(t, buf.String(), "allowed=false")
	})
}
