package main_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/slowcrawl"
	main "github.com/fwojciec/slowcrawl/cmd/slowcrawl"
	"github.com/fwojciec/slowcrawl/crawl"
	"github.com/fwojciec/slowcrawl/goquery"
	"github.com/fwojciec/slowcrawl/mock"
	"github.com/fwojciec/slowcrawl/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withCrawler serves pages from an in-memory site and records written documents.
func withCrawler(td *testDeps, pages map[string]string) *[]*slowcrawl.Document {
	var written []*slowcrawl.Document
	td.Crawler = &crawl.Crawler{
		Frontier:     td.Frontier,
		Fingerprints: td.Ledger,
		Fetcher: &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				body, ok := pages[url]
				if !ok {
					return "", errors.New("HTTP 404")
				}
				return body, nil
			},
		},
		Links: goquery.NewLinkExtractor(),
	}
	td.Writer = &mock.DocumentWriter{
		WriteDocumentFn: func(_ context.Context, doc *slowcrawl.Document) error {
			written = append(written, doc)
			return nil
		},
	}
	return &written
}

func TestCrawlCmd_Run(t *testing.T) {
	t.Parallel()

	site := map[string]string{
		"https://example.com/":  `<a href="/a">a</a><a href="/b">b</a>`,
		"https://example.com/a": `page a`,
		"https://example.com/b": `page b`,
	}

	t.Run("writes each yielded document and prints a summary", func(t *testing.T) {
		t.Parallel()

		td := newTestDeps(t, "https://example.com/")
		written := withCrawler(td, site)

		cmd := &main.CrawlCmd{N: 2}
		require.NoError(t, cmd.Run(td.Dependencies))

		require.Len(t, *written, 2)
		assert.Equal(t, "https://example.com/", (*written)[0].URL)
		assert.Equal(t, "https://example.com/a", (*written)[1].URL)
		assert.Contains(t, td.stdout.String(), "example.com/a  ")
		assert.Contains(t, td.stdout.String(), "2 fetched, 0 skipped, 2 enqueued (1 queued)")
		assert.Equal(t, []string{"https://example.com/b"}, td.savedQueue)
	})

	t.Run("uses the configured batch size when -n is not given", func(t *testing.T) {
		t.Parallel()

		td := newTestDeps(t, "https://example.com/")
		td.Config.BatchSize = 1
		written := withCrawler(td, site)

		require.NoError(t, (&main.CrawlCmd{}).Run(td.Dependencies))

		assert.Len(t, *written, 1)
		assert.Contains(t, td.stdout.String(), "1 fetched")
	})

	t.Run("counts failed fetches as skipped", func(t *testing.T) {
		t.Parallel()

		td := newTestDeps(t, "https://example.com/missing", "https://example.com/a")
		written := withCrawler(td, site)

		require.NoError(t, (&main.CrawlCmd{N: 5}).Run(td.Dependencies))

		assert.Len(t, *written, 1)
		assert.Contains(t, td.stdout.String(), "1 fetched, 1 skipped, 0 enqueued (0 queued)")
	})

	t.Run("returns error when the writer fails", func(t *testing.T) {
		t.Parallel()

		td := newTestDeps(t, "https://example.com/a", "https://example.com/b")
		withCrawler(td, site)
		writeErr := errors.New("disk full")
		td.Writer = &mock.DocumentWriter{
			WriteDocumentFn: func(_ context.Context, _ *slowcrawl.Document) error {
				return writeErr
			},
		}

		err := (&main.CrawlCmd{N: 2}).Run(td.Dependencies)

		require.ErrorIs(t, err, writeErr)
		assert.Contains(t, td.stderr.String(), "error:")
		// Stopping early still flushes the untouched tail of the frontier.
		assert.Equal(t, []string{"https://example.com/b"}, td.savedQueue)
	})

	t.Run("returns error when the flush fails", func(t *testing.T) {
		t.Parallel()

		td := newTestDeps(t, "https://example.com/a")
		withCrawler(td, site)
		td.failSaves(errors.New("read-only filesystem"))

		err := (&main.CrawlCmd{N: 1}).Run(td.Dependencies)

		require.Error(t, err)
		assert.Contains(t, td.stderr.String(), "error:")
	})

	t.Run("exports metrics to the given file", func(t *testing.T) {
		t.Parallel()

		td := newTestDeps(t, "https://example.com/")
		withCrawler(td, site)
		recorder, err := prometheus.NewRecorder(nil)
		require.NoError(t, err)
		td.Metrics = recorder
		td.Crawler.Progress = recorder.Observe

		path := filepath.Join(t.TempDir(), "slowcrawl.prom")
		require.NoError(t, (&main.CrawlCmd{N: 1, MetricsFile: path}).Run(td.Dependencies))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "slowcrawl_frontier_size 2")
		assert.Contains(t, string(data), `slowcrawl_ledger_keys{category="url"} 1`)
		assert.Contains(t, string(data), `slowcrawl_outlinks_total{decision="enqueued"} 2`)
	})
}
