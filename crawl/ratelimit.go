package crawl

import (
	"context"
	"net"
	"strings"
	"sync"

	"github.com/fwojciec/slowcrawl"
	"golang.org/x/time/rate"
)

var _ slowcrawl.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter spaces requests to the same host by at least 1/rps seconds.
// Hosts are tracked independently, so a batch that moves between sites only
// waits when it returns to one it visited recently.
type DomainLimiter struct {
	limit rate.Limit

	mu    sync.Mutex
	hosts map[string]*rate.Limiter
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// to each host, with no bursting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limit: rate.Limit(rps),
		hosts: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until a request to domain is allowed or ctx is done.
// Domains are compared case-insensitively and an explicit default port
// (:80 or :443) names the same host as no port.
func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return d.limiter(canonicalHost(domain)).Wait(ctx)
}

// Domains returns the number of hosts seen so far.
func (d *DomainLimiter) Domains() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.hosts)
}

func (d *DomainLimiter) limiter(host string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()
	l, ok := d.hosts[host]
	if !ok {
		l = rate.NewLimiter(d.limit, 1)
		d.hosts[host] = l
	}
	return l
}

func canonicalHost(domain string) string {
	domain = strings.ToLower(domain)
	if host, port, err := net.SplitHostPort(domain); err == nil && (port == "80" || port == "443") {
		return host
	}
	return domain
}
