package crawl

import (
	"context"

	"github.com/fwojciec/slowcrawl"
)

// fetch retrieves rawURL unless the ledger has already seen it, and records
// it as seen once the transport succeeds. All failures are *slowcrawl.FetchError.
func (c *Crawler) fetch(ctx context.Context, rawURL string) (string, error) {
	if c.Fingerprints.ExistsURL(rawURL) {
		return "", &slowcrawl.FetchError{URL: rawURL, Err: slowcrawl.ErrDuplicateURL}
	}

	if c.RateLimiter != nil {
		host, err := hostOf(rawURL)
		if err != nil {
			return "", &slowcrawl.FetchError{URL: rawURL, Err: err}
		}
		if err := c.RateLimiter.Wait(ctx, host); err != nil {
			return "", &slowcrawl.FetchError{URL: rawURL, Err: err}
		}
	}

	text, err := c.Fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return "", &slowcrawl.FetchError{URL: rawURL, Err: err}
	}

	c.Fingerprints.RecordURL(rawURL)
	return text, nil
}

// parse extracts outlinks from text unless identical content has already
// been parsed, and records the content against rawURL once extraction
// succeeds. All failures are *slowcrawl.ParseError.
func (c *Crawler) parse(rawURL, text string) ([]string, error) {
	if c.Fingerprints.ExistsDoc(text) {
		return nil, &slowcrawl.ParseError{URL: rawURL, Err: slowcrawl.ErrDuplicateContent}
	}

	links, err := c.Links.ExtractLinks(text, rawURL)
	if err != nil {
		return nil, &slowcrawl.ParseError{URL: rawURL, Err: err}
	}

	c.Fingerprints.RecordDoc(text, rawURL)
	return links, nil
}
