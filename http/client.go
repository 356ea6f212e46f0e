package http

import (
	"net/http"
	"time"
)

// NewClient returns an http.Client with the given timeout that sends
// userAgent with every request. An empty userAgent leaves the header alone.
func NewClient(timeout time.Duration, userAgent string) *http.Client {
	var transport http.RoundTripper = http.DefaultTransport
	if userAgent != "" {
		transport = &userAgentTransport{base: transport, userAgent: userAgent}
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(req)
}
