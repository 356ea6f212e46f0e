package robotstxt_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/slowcrawl/robotstxt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// robotsServer serves body at /robots.txt with status and counts requests.
func robotsServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		hits.Add(1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

const disallowPrivate = "User-agent: *\nDisallow: /private\n"

func TestGate_CanFetch(t *testing.T) {
	t.Parallel()

	t.Run("denies disallowed path", func(t *testing.T) {
		t.Parallel()

		server, _ := robotsServer(t, http.StatusOK, disallowPrivate)
		gate := robotstxt.NewGate(server.Client())

		assert.False(t, gate.CanFetch(context.Background(), server.URL+"/private/page"))
	})

	t.Run("allows other paths", func(t *testing.T) {
		t.Parallel()

		server, _ := robotsServer(t, http.StatusOK, disallowPrivate)
		gate := robotstxt.NewGate(server.Client())

		assert.True(t, gate.CanFetch(context.Background(), server.URL+"/public"))
		assert.True(t, gate.CanFetch(context.Background(), server.URL))
	})

	t.Run("evaluates generic agent by default", func(t *testing.T) {
		t.Parallel()

		server, _ := robotsServer(t, http.StatusOK, "User-agent: slowcrawl\nDisallow: /\n")

		generic := robotstxt.NewGate(server.Client())
		named := robotstxt.NewGate(server.Client(), robotstxt.WithUserAgent("slowcrawl"))

		assert.True(t, generic.CanFetch(context.Background(), server.URL+"/a"))
		assert.False(t, named.CanFetch(context.Background(), server.URL+"/a"))
	})

	t.Run("allows unparsable URL", func(t *testing.T) {
		t.Parallel()

		gate := robotstxt.NewGate(nil)
		assert.True(t, gate.CanFetch(context.Background(), "://bad url"))
	})
}

func TestGate_CanFetch_unavailable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
	}{
		{name: "not found", status: http.StatusNotFound},
		{name: "forbidden", status: http.StatusForbidden},
		{name: "server error", status: http.StatusInternalServerError},
		{name: "no content", status: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server, _ := robotsServer(t, tt.status, "User-agent: *\nDisallow: /\n")
			var buf bytes.Buffer
			gate := robotstxt.NewGate(server.Client(), robotstxt.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

			assert.True(t, gate.CanFetch(context.Background(), server.URL+"/a"))
			assert.Contains(t, buf.String(), "robots.txt unavailable")
		})
	}

	t.Run("network failure", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		var buf bytes.Buffer
		gate := robotstxt.NewGate(nil, robotstxt.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

		assert.True(t, gate.CanFetch(context.Background(), url+"/a"))
		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), url+"/robots.txt")
	})

	t.Run("cancelled context is not reported as unavailable", func(t *testing.T) {
		t.Parallel()

		server, hits := robotsServer(t, http.StatusOK, disallowPrivate)
		var buf bytes.Buffer
		gate := robotstxt.NewGate(server.Client(),
			robotstxt.WithCacheTTL(time.Minute),
			robotstxt.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
		)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		gate.CanFetch(ctx, server.URL+"/private/page")
		assert.NotContains(t, buf.String(), "robots.txt unavailable")

		// The aborted lookup is not cached, so the next check still applies the rules.
		assert.False(t, gate.CanFetch(context.Background(), server.URL+"/private/page"))
		assert.Equal(t, int32(1), hits.Load())
	})
}

func TestGate_cache(t *testing.T) {
	t.Parallel()

	t.Run("fetches robots.txt on every check by default", func(t *testing.T) {
		t.Parallel()

		server, hits := robotsServer(t, http.StatusOK, disallowPrivate)
		gate := robotstxt.NewGate(server.Client())

		gate.CanFetch(context.Background(), server.URL+"/a")
		gate.CanFetch(context.Background(), server.URL+"/b")

		assert.Equal(t, int32(2), hits.Load())
	})

	t.Run("reuses robots.txt within TTL", func(t *testing.T) {
		t.Parallel()

		server, hits := robotsServer(t, http.StatusOK, disallowPrivate)
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		var mu sync.Mutex
		clock := func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			return now
		}
		gate := robotstxt.NewGate(server.Client(),
			robotstxt.WithCacheTTL(time.Minute),
			robotstxt.WithClock(clock),
		)

		assert.True(t, gate.CanFetch(context.Background(), server.URL+"/a"))
		assert.False(t, gate.CanFetch(context.Background(), server.URL+"/private"))
		assert.Equal(t, int32(1), hits.Load())

		mu.Lock()
		now = now.Add(2 * time.Minute)
		mu.Unlock()

		gate.CanFetch(context.Background(), server.URL+"/a")
		assert.Equal(t, int32(2), hits.Load())
	})

	t.Run("caches unavailable robots.txt too", func(t *testing.T) {
		t.Parallel()

		server, hits := robotsServer(t, http.StatusNotFound, "")
		gate := robotstxt.NewGate(server.Client(), robotstxt.WithCacheTTL(time.Minute))

		assert.True(t, gate.CanFetch(context.Background(), server.URL+"/a"))
		assert.True(t, gate.CanFetch(context.Background(), server.URL+"/b"))
		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("keeps origins separate", func(t *testing.T) {
		t.Parallel()

		deny, denyHits := robotsServer(t, http.StatusOK, "User-agent: *\nDisallow: /\n")
		allow, allowHits := robotsServer(t, http.StatusOK, "User-agent: *\nAllow: /\n")
		gate := robotstxt.NewGate(nil, robotstxt.WithCacheTTL(time.Minute))

		assert.False(t, gate.CanFetch(context.Background(), deny.URL+"/a"))
		assert.True(t, gate.CanFetch(context.Background(), allow.URL+"/a"))
		assert.Equal(t, int32(1), denyHits.Load())
		assert.Equal(t, int32(1), allowHits.Load())
	})

	t.Run("collapses concurrent fills", func(t *testing.T) {
		t.Parallel()

		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			time.Sleep(20 * time.Millisecond)
			_, _ = w.Write([]byte(disallowPrivate))
		}))
		defer server.Close()
		gate := robotstxt.NewGate(server.Client(), robotstxt.WithCacheTTL(time.Minute))

		var wg sync.WaitGroup
		for range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				assert.True(t, gate.CanFetch(context.Background(), server.URL+"/a"))
			}()
		}
		wg.Wait()

		require.Equal(t, int32(1), hits.Load())
	})
}
