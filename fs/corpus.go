package fs

import (
	"context"
	"path/filepath"

	"github.com/fwojciec/slowcrawl"
)

// Ensure CorpusWriter implements slowcrawl.DocumentWriter at compile time.
var _ slowcrawl.DocumentWriter = (*CorpusWriter)(nil)

// CorpusWriter writes fetched documents into a flat directory, one file per
// distinct content hash.
type CorpusWriter struct {
	dir string
}

// NewCorpusWriter creates a CorpusWriter rooted at dir.
func NewCorpusWriter(dir string) *CorpusWriter {
	return &CorpusWriter{dir: dir}
}

// PathFor returns the file a document with the given hash is written to.
func (w *CorpusWriter) PathFor(hash string) string {
	return filepath.Join(w.dir, hash+".html")
}

// WriteDocument writes the raw document body to <dir>/<hash>.html.
func (w *CorpusWriter) WriteDocument(_ context.Context, doc *slowcrawl.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}
	return writeFileAtomic(w.PathFor(doc.Hash), []byte(doc.Content))
}
