package main

import (
	"fmt"
	"net/url"

	"github.com/fwojciec/slowcrawl"
)

// Run executes the enqueue command.
func (c *EnqueueCmd) Run(deps *Dependencies) error {
	if len(c.URLs) == 0 && c.Sitemap == "" {
		fmt.Fprintln(deps.Stderr, "error: give at least one URL or --sitemap")
		return slowcrawl.Errorf(slowcrawl.EINVALID, "no URLs to enqueue")
	}

	candidates := make([]string, 0, len(c.URLs))
	for _, raw := range c.URLs {
		if !isCrawlableURL(raw) {
			fmt.Fprintf(deps.Stderr, "error: %q is not an absolute http(s) URL\n", raw)
			return slowcrawl.Errorf(slowcrawl.EINVALID, "invalid URL %q", raw)
		}
		candidates = append(candidates, raw)
	}

	if c.Sitemap != "" {
		discovered, err := deps.Sitemaps.DiscoverURLs(deps.Ctx, c.Sitemap)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", slowcrawl.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Found %d URLs in sitemap\n", len(discovered))
		candidates = append(candidates, discovered...)
	}

	var added, seen int
	for _, u := range candidates {
		if deps.Ledger.ExistsURL(u) {
			seen++
			continue
		}
		deps.Frontier.Enqueue(u)
		added++
	}

	if err := deps.Frontier.Flush(deps.Ctx); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", slowcrawl.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Enqueued %d URLs (%d already seen, %d queued)\n", added, seen, deps.Frontier.Len())
	return nil
}

func isCrawlableURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
