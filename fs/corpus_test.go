package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/slowcrawl"
	"github.com/fwojciec/slowcrawl/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: Corpus Output
// Every yielded document lands on disk under its content hash

func TestCorpusWriter_WritesDocumentUnderHash(t *testing.T) {
	t.Parallel()

	// Given a writer targeting a directory that does not exist yet
	dir := filepath.Join(t.TempDir(), "corpus")
	w := fs.NewCorpusWriter(dir)

	// When I write a document
	err := w.WriteDocument(context.Background(), &slowcrawl.Document{
		URL:       "https://example.com/a",
		Content:   "<html><body>A</body></html>",
		Hash:      "0123456789abcdef",
		FetchedAt: time.Now(),
	})

	// Then the raw body is stored as <hash>.html
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(dir, "0123456789abcdef.html"))
	require.NoError(t, err)
	assert.Equal(t, "<html><body>A</body></html>", string(data))
	assert.Equal(t, filepath.Join(dir, "0123456789abcdef.html"), w.PathFor("0123456789abcdef"))
}

func TestCorpusWriter_OverwritesSameHash(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w := fs.NewCorpusWriter(dir)
	doc := &slowcrawl.Document{URL: "https://example.com/a", Content: "v1", Hash: "h"}

	require.NoError(t, w.WriteDocument(context.Background(), doc))
	doc.Content = "v2"
	require.NoError(t, w.WriteDocument(context.Background(), doc))

	data, err := os.ReadFile(filepath.Join(dir, "h.html"))
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))
}

func TestCorpusWriter_RejectsInvalidDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	w := fs.NewCorpusWriter(dir)

	err := w.WriteDocument(context.Background(), &slowcrawl.Document{URL: "https://example.com/a"})

	require.Error(t, err)
	assert.Equal(t, slowcrawl.EINVALID, slowcrawl.ErrorCode(err))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
