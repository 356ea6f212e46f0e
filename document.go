package slowcrawl

import (
	"context"
	"time"
)

// Document represents a page retrieved by a crawl batch.
type Document struct {
	URL       string    `json:"url"`
	Content   string    `json:"content"`
	Hash      string    `json:"hash"`
	Outlinks  []string  `json:"outlinks"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.URL == "" {
		return Errorf(EINVALID, "document url required")
	}
	if d.Hash == "" {
		return Errorf(EINVALID, "document hash required")
	}
	return nil
}

// DocumentWriter writes retrieved documents to storage.
type DocumentWriter interface {
	WriteDocument(ctx context.Context, doc *Document) error
}
