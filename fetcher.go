package slowcrawl

import "context"

// Fetcher retrieves raw page text from URLs.
type Fetcher interface {
	// Fetch requests the URL and returns the response body.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (text string, err error)

	// Close releases transport resources.
	Close() error
}

// LinkExtractor discovers outbound links in fetched markup.
type LinkExtractor interface {
	// ExtractLinks parses text and returns absolute URLs in discovery order.
	// The baseURL is used to resolve relative references.
	ExtractLinks(text string, baseURL string) ([]string, error)
}

// RobotsGate decides whether robots.txt permits fetching a URL.
type RobotsGate interface {
	// CanFetch reports whether the URL's origin allows fetching its path.
	// Failures to retrieve robots.txt resolve to true.
	CanFetch(ctx context.Context, url string) bool
}
