package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/slowcrawl"
	"github.com/fwojciec/slowcrawl/crawl"
	"github.com/fwojciec/slowcrawl/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerStore(t *testing.T) {
	t.Parallel()

	t.Run("empty database loads both categories", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewLedgerStore(openDB(t))

		fp, err := store.LoadLedger(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, fp.URL)
		assert.NotNil(t, fp.Doc)
		assert.Empty(t, fp.URL)
		assert.Empty(t, fp.Doc)
	})

	t.Run("round trips fingerprints", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewLedgerStore(openDB(t))
		ctx := context.Background()
		want := slowcrawl.NewFingerprints()
		want.URL["1111111111111111"] = []string{"https://a/"}
		want.URL["2222222222222222"] = []string{"https://b/", "https://c/"}
		want.Doc["3333333333333333"] = []string{"https://a/"}

		require.NoError(t, store.SaveLedger(ctx, want))
		got, err := store.LoadLedger(ctx)

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("save replaces previous fingerprints", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewLedgerStore(openDB(t))
		ctx := context.Background()

		first := slowcrawl.NewFingerprints()
		first.URL["old"] = []string{"https://old/"}
		require.NoError(t, store.SaveLedger(ctx, first))

		second := slowcrawl.NewFingerprints()
		second.Doc["new"] = []string{"https://new/"}
		require.NoError(t, store.SaveLedger(ctx, second))

		got, err := store.LoadLedger(ctx)
		require.NoError(t, err)
		assert.Empty(t, got.URL)
		assert.Equal(t, []string{"https://new/"}, got.Doc["new"])
	})

	t.Run("backs a ledger across reopen", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewLedgerStore(openDB(t))
		ctx := context.Background()

		ledger, err := crawl.OpenLedger(ctx, store)
		require.NoError(t, err)
		ledger.RecordURL("https://example.com/a")
		ledger.RecordDoc("<html>a</html>", "https://example.com/a")
		require.NoError(t, ledger.Flush(ctx))

		reopened, err := crawl.OpenLedger(ctx, store)
		require.NoError(t, err)
		assert.True(t, reopened.ExistsURL("https://example.com/a"))
		assert.True(t, reopened.ExistsDoc("<html>a</html>"))
		assert.False(t, reopened.ExistsURL("https://example.com/b"))
	})
}
