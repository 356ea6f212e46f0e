package http

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/slowcrawl"
	"github.com/temoto/robotstxt"
)

// DefaultMaxSitemapURLs caps the page URLs returned by one discovery.
// It matches the per-file limit of the sitemaps protocol.
const DefaultMaxSitemapURLs = 50000

const (
	// maxSitemapBytes bounds a single sitemap after decompression.
	maxSitemapBytes = 50 << 20
	// maxIndexDepth bounds how deeply sitemap indexes may nest.
	maxIndexDepth = 3
)

var _ slowcrawl.SitemapService = (*SitemapService)(nil)

// SitemapService discovers crawlable page URLs from a site's sitemaps.
// Sitemaps are located through the Sitemap directives of robots.txt, or at
// /sitemap.xml when robots.txt names none. Gzipped sitemaps and nested
// sitemap indexes are followed.
type SitemapService struct {
	client  *http.Client
	maxURLs int
}

// SitemapOption configures a SitemapService.
type SitemapOption func(*SitemapService)

// WithMaxURLs limits how many page URLs DiscoverURLs returns.
func WithMaxURLs(n int) SitemapOption {
	return func(s *SitemapService) {
		s.maxURLs = n
	}
}

// NewSitemapService creates a SitemapService. A nil client uses
// http.DefaultClient.
func NewSitemapService(client *http.Client, opts ...SitemapOption) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	s := &SitemapService{client: client, maxURLs: DefaultMaxSitemapURLs}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DiscoverURLs returns the page URLs listed in the sitemaps of baseURL's
// host, in document order and without duplicates. Only http(s) URLs on the
// same host are kept. When baseURL has a non-root path such as /docs, only
// URLs under that path are returned. A site without sitemaps yields an
// empty, non-nil slice.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil || base.Host == "" {
		return nil, slowcrawl.Errorf(slowcrawl.EINVALID, "invalid base URL %q", baseURL)
	}

	origin := &url.URL{Scheme: base.Scheme, Host: base.Host}
	roots, err := s.sitemapsFromRobots(ctx, origin)
	if err != nil {
		return nil, err
	}

	w := &sitemapWalk{
		svc:     s,
		host:    strings.ToLower(base.Host),
		prefix:  scopePrefix(base.Path),
		visited: make(map[string]struct{}),
		seen:    make(map[string]struct{}),
		urls:    []string{},
	}

	if len(roots) == 0 {
		fallback := origin.ResolveReference(&url.URL{Path: "/sitemap.xml"}).String()
		if err := w.visit(ctx, fallback, 0); err != nil && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return w.urls, nil
	}

	for _, root := range roots {
		if w.full() {
			break
		}
		if err := w.visit(ctx, root, 0); err != nil {
			return nil, err
		}
	}
	return w.urls, nil
}

// sitemapsFromRobots returns the Sitemap directives of the origin's
// robots.txt. A missing or unreadable robots.txt names no sitemaps.
func (s *SitemapService) sitemapsFromRobots(ctx context.Context, origin *url.URL) ([]string, error) {
	robotsURL := origin.ResolveReference(&url.URL{Path: "/robots.txt"}).String()
	body, err := s.fetch(ctx, robotsURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	data, err := robotstxt.FromBytes(body)
	if err != nil {
		return nil, nil
	}
	return data.Sitemaps, nil
}

// fetch GETs target and returns its body, gunzipped when the payload is
// gzip-compressed.
func (s *SitemapService) fetch(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, target)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxSitemapBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", target, err)
	}
	if !isGzip(body) {
		return body, nil
	}

	zr, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", target, err)
	}
	defer zr.Close()
	body, err = io.ReadAll(io.LimitReader(zr, maxSitemapBytes))
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", target, err)
	}
	return body, nil
}

func isGzip(b []byte) bool {
	return len(b) >= 2 && b[0] == 0x1f && b[1] == 0x8b
}

// sitemapWalk collects page URLs across the sitemaps of one discovery.
type sitemapWalk struct {
	svc     *SitemapService
	host    string
	prefix  string
	visited map[string]struct{}
	seen    map[string]struct{}
	urls    []string
}

func (w *sitemapWalk) full() bool {
	return w.svc.maxURLs > 0 && len(w.urls) >= w.svc.maxURLs
}

// visit reads one sitemap or sitemap index. Each sitemap is read at most once.
func (w *sitemapWalk) visit(ctx context.Context, loc string, depth int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := w.visited[loc]; ok || depth > maxIndexDepth || w.full() {
		return nil
	}
	w.visited[loc] = struct{}{}

	body, err := w.svc.fetch(ctx, loc)
	if err != nil {
		return err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return fmt.Errorf("parsing sitemap %s: %w", loc, err)
	}
	root := doc.Root()
	if root == nil {
		return fmt.Errorf("parsing sitemap %s: empty document", loc)
	}

	switch root.Tag {
	case "sitemapindex":
		for _, child := range locs(root, "sitemap") {
			if err := w.visit(ctx, child, depth+1); err != nil {
				return err
			}
		}
	case "urlset":
		for _, page := range locs(root, "url") {
			if w.full() {
				break
			}
			w.add(page)
		}
	default:
		return fmt.Errorf("parsing sitemap %s: unexpected root element <%s>", loc, root.Tag)
	}
	return nil
}

func (w *sitemapWalk) add(raw string) {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return
	}
	if strings.ToLower(u.Host) != w.host || !withinPrefix(u.Path, w.prefix) {
		return
	}
	if _, ok := w.seen[raw]; ok {
		return
	}
	w.seen[raw] = struct{}{}
	w.urls = append(w.urls, raw)
}

// locs returns the trimmed, non-empty <loc> texts of root's tag children.
func locs(root *etree.Element, tag string) []string {
	var out []string
	for _, el := range root.SelectElements(tag) {
		loc := el.SelectElement("loc")
		if loc == nil {
			continue
		}
		if text := strings.TrimSpace(loc.Text()); text != "" {
			out = append(out, text)
		}
	}
	return out
}

// scopePrefix turns a base path into a directory prefix ending in "/".
// The root path scopes nothing.
func scopePrefix(path string) string {
	if path == "" || path == "/" {
		return ""
	}
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return path
}

// withinPrefix reports whether path lies under prefix. /docs/ covers
// /docs/ and /docs/intro but not /documentation.
func withinPrefix(path, prefix string) bool {
	return prefix == "" || strings.HasPrefix(path, prefix)
}
