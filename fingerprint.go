package slowcrawl

import "context"

// Category identifies which ledger a fingerprint belongs to.
type Category int

// Fingerprint categories.
const (
	// CategoryURL maps hash(url) to the URLs that produced it.
	CategoryURL Category = iota + 1
	// CategoryDoc maps hash(content) to the source URLs that served it.
	CategoryDoc
)

// String returns the persisted key of the category.
func (c Category) String() string {
	switch c {
	case CategoryURL:
		return "url"
	case CategoryDoc:
		return "doc"
	default:
		return "invalid"
	}
}

// Valid reports whether c is one of the defined categories.
func (c Category) Valid() bool {
	return c == CategoryURL || c == CategoryDoc
}

// ParseCategory returns the category for its persisted key.
// Returns ErrInvalidCategory for any other key.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "url":
		return CategoryURL, nil
	case "doc":
		return CategoryDoc, nil
	}
	return 0, ErrInvalidCategory
}

// Fingerprints is the serialized form of a fingerprint ledger.
// Each category maps a hash key to an unordered list of values.
type Fingerprints struct {
	URL map[string][]string `json:"url"`
	Doc map[string][]string `json:"doc"`
}

// NewFingerprints returns an empty, schema-valid Fingerprints.
func NewFingerprints() *Fingerprints {
	return &Fingerprints{
		URL: make(map[string][]string),
		Doc: make(map[string][]string),
	}
}

// FingerprintStore is the dedup ledger of seen URLs and document contents.
type FingerprintStore interface {
	// ExistsURL returns true if this exact URL has been recorded.
	ExistsURL(url string) bool

	// ExistsDoc returns true if content with the same hash has been recorded
	// from any source URL.
	ExistsDoc(content string) bool

	// RecordURL marks the URL as seen. Recording a seen URL is a no-op.
	RecordURL(url string)

	// RecordDoc marks the content as seen, keyed by the URL that served it.
	// It is a no-op if ExistsDoc(content) is already true.
	RecordDoc(content, sourceURL string)

	// Flush writes both categories to durable storage.
	Flush(ctx context.Context) error
}

// LedgerStore persists a fingerprint ledger. Saves are whole-ledger rewrites.
type LedgerStore interface {
	LoadLedger(ctx context.Context) (*Fingerprints, error)
	SaveLedger(ctx context.Context, fp *Fingerprints) error
}
