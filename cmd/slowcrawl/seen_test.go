package main_test

import (
	"testing"

	main "github.com/fwojciec/slowcrawl/cmd/slowcrawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeenCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("reports a recorded URL as seen", func(t *testing.T) {
		t.Parallel()

		td := newTestDeps(t)
		td.Ledger.RecordURL("https://example.com/")

		require.NoError(t, (&main.SeenCmd{URL: "https://example.com/"}).Run(td.Dependencies))

		assert.Equal(t, "seen     https://example.com/\n", td.stdout.String())
	})

	t.Run("reports an unknown URL as not seen", func(t *testing.T) {
		t.Parallel()

		td := newTestDeps(t)

		require.NoError(t, (&main.SeenCmd{URL: "https://example.com/"}).Run(td.Dependencies))

		assert.Equal(t, "not seen https://example.com/\n", td.stdout.String())
	})
}
