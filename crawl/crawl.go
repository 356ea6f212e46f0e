// Package crawl provides the crawl frontier, the fingerprint ledger, and
// the fetch-parse-enqueue loop that ties them together.
package crawl

import (
	"context"
	"errors"
	"iter"
	"net/url"
	"time"

	"github.com/fwojciec/slowcrawl"
	"github.com/google/uuid"
)

// DefaultBatchSize is the number of documents a batch requests when the
// caller does not say.
const DefaultBatchSize = 10

// Crawler runs fetch-parse-enqueue batches over a frontier and a ledger.
// Frontier, Fingerprints, Fetcher and Links are required. Robots,
// RateLimiter and Progress are optional; a nil Robots allows every URL.
type Crawler struct {
	Frontier     slowcrawl.Frontier
	Fingerprints slowcrawl.FingerprintStore
	Fetcher      slowcrawl.Fetcher
	Links        slowcrawl.LinkExtractor
	Robots       slowcrawl.RobotsGate
	RateLimiter  slowcrawl.DomainLimiter
	Progress     ProgressFunc
}

// Result holds the outcome of a batch.
type Result struct {
	ID       string
	Yielded  int
	Skipped  int
	Enqueued int
	Blocked  int
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type    ProgressType
	BatchID string
	URL     string
	Error   error
	Result  Result
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	// ProgressStarted is sent once before the first dequeue.
	ProgressStarted ProgressType = iota
	// ProgressYielded is sent for every document handed to the caller.
	ProgressYielded
	// ProgressSkipped is sent for a dequeued URL that failed to fetch or parse.
	ProgressSkipped
	// ProgressEnqueued is sent for every outlink admitted to the frontier.
	ProgressEnqueued
	// ProgressBlocked is sent for every outlink refused by robots.txt.
	ProgressBlocked
	// ProgressFinished is sent once after the stores are flushed.
	ProgressFinished
)

// String returns a short name for the progress type.
func (t ProgressType) String() string {
	switch t {
	case ProgressStarted:
		return "started"
	case ProgressYielded:
		return "yielded"
	case ProgressSkipped:
		return "skipped"
	case ProgressEnqueued:
		return "enqueued"
	case ProgressBlocked:
		return "blocked"
	case ProgressFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// MultiProgress returns a ProgressFunc that forwards each event to every
// non-nil fn in order.
func MultiProgress(fns ...ProgressFunc) ProgressFunc {
	var active []ProgressFunc
	for _, fn := range fns {
		if fn != nil {
			active = append(active, fn)
		}
	}
	return func(event ProgressEvent) {
		for _, fn := range active {
			fn(event)
		}
	}
}

// Batch is one bounded run of the fetch-parse-enqueue loop.
// A Batch is single-use and must not be iterated from multiple goroutines.
type Batch struct {
	crawler *Crawler
	ctx     context.Context
	size    int
	started bool
	result  Result
	err     error
}

// Batch prepares a batch requesting up to n newly fetched documents.
// A non-positive n requests DefaultBatchSize. No work happens until the
// caller ranges over Documents.
func (c *Crawler) Batch(ctx context.Context, n int) *Batch {
	if n <= 0 {
		n = DefaultBatchSize
	}
	return &Batch{
		crawler: c,
		ctx:     ctx,
		size:    n,
		result:  Result{ID: uuid.New().String()},
	}
}

// Documents returns the lazily produced documents of the batch. Each
// element is produced only when the caller asks for it. Dequeued URLs that
// fail to fetch or parse are dropped and do not count toward the batch
// size. When the sequence ends, because the budget is spent, the frontier
// is empty, the context is done, or the caller stopped ranging, the
// frontier and the ledger are flushed. Ranging a second time yields nothing.
func (b *Batch) Documents() iter.Seq[*slowcrawl.Document] {
	return func(yield func(*slowcrawl.Document) bool) {
		if b.started {
			return
		}
		b.started = true
		b.emit(ProgressEvent{Type: ProgressStarted})
		defer b.finish()

		for remaining := b.size; remaining > 0; {
			if err := b.ctx.Err(); err != nil {
				b.err = err
				return
			}

			url, ok := b.crawler.Frontier.Dequeue()
			if !ok {
				return
			}

			doc, err := b.process(url)
			if err != nil {
				b.result.Skipped++
				b.emit(ProgressEvent{Type: ProgressSkipped, URL: url, Error: err})
				continue
			}
			remaining--

			b.result.Yielded++
			b.emit(ProgressEvent{Type: ProgressYielded, URL: url})
			if !yield(doc) {
				return
			}
		}
	}
}

// Result returns the counters of the batch so far.
func (b *Batch) Result() Result {
	return b.result
}

// Err returns the error that ended the batch early or failed the final
// flush, if any. Skipped URLs are not errors.
func (b *Batch) Err() error {
	return b.err
}

// process fetches and parses one URL, admits its outlinks to the
// frontier, and returns the document.
func (b *Batch) process(rawURL string) (*slowcrawl.Document, error) {
	c := b.crawler

	text, err := c.fetch(b.ctx, rawURL)
	if err != nil {
		return nil, err
	}

	outlinks, err := c.parse(rawURL, text)
	if err != nil {
		return nil, err
	}

	for _, link := range outlinks {
		if c.Fingerprints.ExistsURL(link) {
			continue
		}
		if c.Robots != nil && !c.Robots.CanFetch(b.ctx, link) {
			b.result.Blocked++
			b.emit(ProgressEvent{Type: ProgressBlocked, URL: link})
			continue
		}
		c.Frontier.Enqueue(link)
		b.result.Enqueued++
		b.emit(ProgressEvent{Type: ProgressEnqueued, URL: link})
	}

	return &slowcrawl.Document{
		URL:       rawURL,
		Content:   text,
		Hash:      ComputeHash(text),
		Outlinks:  outlinks,
		FetchedAt: time.Now().UTC(),
	}, nil
}

// finish flushes both stores. It runs exactly once per batch.
func (b *Batch) finish() {
	// Flush even when the batch context is done.
	ctx := context.WithoutCancel(b.ctx)
	err := errors.Join(
		b.crawler.Frontier.Flush(ctx),
		b.crawler.Fingerprints.Flush(ctx),
	)
	b.err = errors.Join(b.err, err)
	b.emit(ProgressEvent{Type: ProgressFinished, Error: b.err, Result: b.result})
}

func (b *Batch) emit(event ProgressEvent) {
	if b.crawler.Progress == nil {
		return
	}
	event.BatchID = b.result.ID
	b.crawler.Progress(event)
}

// hostOf returns the host of rawURL for rate limiting.
func hostOf(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return u.Host, nil
}
