// Package goquery extracts outbound links from HTML documents.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/slowcrawl"
)

// Ensure LinkExtractor implements slowcrawl.LinkExtractor at compile time.
var _ slowcrawl.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor returns the absolute URLs of every a[href] in a document.
// Query strings and fragments are stripped, non-HTTP links and links back
// to the document itself are dropped, and each URL is returned once in
// document order.
type LinkExtractor struct {
	sameHost bool
}

// Option configures a LinkExtractor.
type Option func(*LinkExtractor)

// WithSameHostOnly drops links whose host differs from the base URL.
// Subdomains are considered different hosts.
func WithSameHostOnly() Option {
	return func(e *LinkExtractor) {
		e.sameHost = true
	}
}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor(opts ...Option) *LinkExtractor {
	e := &LinkExtractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExtractLinks parses html and returns its outlinks resolved against baseURL.
func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, slowcrawl.Errorf(slowcrawl.EINVALID, "invalid base URL: %v", err)
	}
	base = normalize(base)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, slowcrawl.Errorf(slowcrawl.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]struct{})
	links := []string{}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == nil {
			return
		}
		if e.sameHost && !strings.EqualFold(resolved.Host, base.Host) {
			return
		}

		link := resolved.String()
		if _, ok := seen[link]; ok {
			return
		}
		seen[link] = struct{}{}
		links = append(links, link)
	})

	return links, nil
}

// resolveURL resolves href against base with query and fragment stripped.
// Returns nil if href cannot be parsed, does not resolve to an http(s) URL,
// or points back at base.
func resolveURL(base *url.URL, href string) *url.URL {
	ref, err := url.Parse(href)
	if err != nil {
		return nil
	}
	resolved := normalize(base.ResolveReference(ref))

	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return nil
	}
	if resolved.Host == "" {
		return nil
	}

	// Filter self-referential links (e.g., anchor-only links pointing to same page)
	if samePage(resolved, base) {
		return nil
	}
	return resolved
}

// samePage reports whether a and b name the same page, treating an empty
// path as "/".
func samePage(a, b *url.URL) bool {
	return strings.EqualFold(a.Scheme, b.Scheme) &&
		strings.EqualFold(a.Host, b.Host) &&
		pagePath(a) == pagePath(b)
}

func pagePath(u *url.URL) string {
	if p := u.EscapedPath(); p != "" {
		return p
	}
	return "/"
}

func normalize(u *url.URL) *url.URL {
	n := *u
	n.RawQuery = ""
	n.ForceQuery = false
	n.Fragment = ""
	n.RawFragment = ""
	return &n
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(href)
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
