package slowcrawl

import "context"

// Frontier is the queue of URLs awaiting fetch.
// Ordering is strict FIFO and there is no deduplication at this layer;
// callers consult a FingerprintStore before enqueueing.
type Frontier interface {
	// Enqueue appends a URL to the tail of the queue.
	Enqueue(url string)

	// Dequeue removes and returns the head of the queue.
	// Returns false if the frontier is empty.
	Dequeue() (string, bool)

	// Len returns the number of URLs in the queue.
	Len() int

	// Flush writes the pending queue to durable storage.
	// It is safe to call at any time, including on an empty queue.
	Flush(ctx context.Context) error
}

// QueueStore persists the frontier queue as an ordered list of URLs.
// Saves are whole-queue rewrites.
type QueueStore interface {
	LoadQueue(ctx context.Context) ([]string, error)
	SaveQueue(ctx context.Context, queue []string) error
}

// SeedSource supplies the URLs a frontier starts from when its persisted
// queue is empty.
type SeedSource interface {
	Seeds(ctx context.Context) ([]string, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
