// Package robotstxt implements the robots.txt admission check for outlinks.
package robotstxt

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/slowcrawl"
	"github.com/temoto/robotstxt"
	"golang.org/x/sync/singleflight"
)

// DefaultUserAgent is the robots.txt group evaluated when none is configured.
const DefaultUserAgent = "*"

// maxRobotsBytes caps how much of a robots.txt body is read.
const maxRobotsBytes = 1 << 20

// Ensure Gate implements slowcrawl.RobotsGate at compile time.
var _ slowcrawl.RobotsGate = (*Gate)(nil)

// Gate decides whether a URL may be fetched according to the robots.txt of
// its origin. Any failure to obtain or parse robots.txt allows the fetch.
type Gate struct {
	client    *http.Client
	userAgent string
	ttl       time.Duration
	logger    *slog.Logger
	now       func() time.Time

	mu    sync.Mutex
	cache map[string]cacheEntry
	group singleflight.Group
}

type cacheEntry struct {
	// data is nil when robots.txt was unavailable.
	data    *robotstxt.RobotsData
	expires time.Time
}

// Option configures a Gate.
type Option func(*Gate)

// WithUserAgent sets the robots.txt group that rules are evaluated for.
// Defaults to DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(g *Gate) {
		g.userAgent = ua
	}
}

// WithCacheTTL keeps each origin's robots.txt for d before fetching it
// again. Zero, the default, fetches robots.txt on every check.
func WithCacheTTL(d time.Duration) Option {
	return func(g *Gate) {
		g.ttl = d
	}
}

// WithLogger sets the logger that receives robots.txt failures.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) {
		g.logger = logger
	}
}

// WithClock replaces time.Now for cache expiry.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) {
		g.now = now
	}
}

// NewGate creates a Gate that fetches robots.txt with client.
// A nil client uses http.DefaultClient. The client decides the User-Agent
// header; see WithUserAgent for the group that rules are evaluated for.
func NewGate(client *http.Client, opts ...Option) *Gate {
	if client == nil {
		client = http.DefaultClient
	}
	g := &Gate{
		client:    client,
		userAgent: DefaultUserAgent,
		logger:    slog.New(slog.DiscardHandler),
		now:       time.Now,
		cache:     make(map[string]cacheEntry),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CanFetch reports whether rawURL may be fetched. URLs that cannot be
// parsed, and origins whose robots.txt is unavailable, are allowed.
func (g *Gate) CanFetch(ctx context.Context, rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return true
	}

	data := g.robots(ctx, u)
	if data == nil {
		return true
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	return data.TestAgent(path, g.userAgent)
}

// robots returns the parsed robots.txt for the origin of u, or nil when it
// is unavailable.
func (g *Gate) robots(ctx context.Context, u *url.URL) *robotstxt.RobotsData {
	origin := strings.ToLower(u.Scheme + "://" + u.Host)
	if g.ttl <= 0 {
		data, _ := g.load(ctx, origin)
		return data
	}

	g.mu.Lock()
	entry, ok := g.cache[origin]
	g.mu.Unlock()
	if ok && g.now().Before(entry.expires) {
		return entry.data
	}

	v, _, _ := g.group.Do(origin, func() (any, error) {
		g.mu.Lock()
		entry, ok := g.cache[origin]
		g.mu.Unlock()
		if ok && g.now().Before(entry.expires) {
			return entry.data, nil
		}

		data, ok := g.load(ctx, origin)
		if ok {
			g.mu.Lock()
			g.cache[origin] = cacheEntry{data: data, expires: g.now().Add(g.ttl)}
			g.mu.Unlock()
		}
		return data, nil
	})
	return v.(*robotstxt.RobotsData)
}

// load fetches robots.txt for origin. The boolean is false when the result
// must not be cached because ctx ended before robots.txt could be read.
func (g *Gate) load(ctx context.Context, origin string) (*robotstxt.RobotsData, bool) {
	robotsURL := origin + "/robots.txt"
	data, err := g.fetch(ctx, robotsURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false
		}
		g.logger.Warn("robots.txt unavailable; allowing access",
			"url", robotsURL,
			"err", &slowcrawl.RobotsUnavailableError{URL: robotsURL, Err: err},
		)
		return nil, true
	}
	return data, true
}

func (g *Gate) fetch(ctx context.Context, robotsURL string) (*robotstxt.RobotsData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRobotsBytes))
	if err != nil {
		return nil, err
	}
	data, err := robotstxt.FromBytes(body)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return data, nil
}
