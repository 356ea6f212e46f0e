package crawl

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/fwojciec/slowcrawl"
)

// Compile-time interface verification.
var _ slowcrawl.Frontier = (*Frontier)(nil)

// Frontier is a FIFO URL queue backed by a QueueStore.
// It is safe for concurrent use by multiple goroutines.
type Frontier struct {
	mu    sync.Mutex
	queue []string

	// flushMu serializes Flush so that snapshots reach the store in order.
	flushMu sync.Mutex
	store   slowcrawl.QueueStore
}

// OpenFrontier loads the persisted queue from store. If the persisted queue
// is empty the frontier is initialized from seeds instead; seeds is not
// consulted otherwise and may be nil.
func OpenFrontier(ctx context.Context, store slowcrawl.QueueStore, seeds slowcrawl.SeedSource) (*Frontier, error) {
	queue, err := store.LoadQueue(ctx)
	if err != nil {
		return nil, fmt.Errorf("load frontier: %w", err)
	}

	if len(queue) == 0 && seeds != nil {
		queue, err = seeds.Seeds(ctx)
		if err != nil {
			return nil, fmt.Errorf("load seeds: %w", err)
		}
	}

	return &Frontier{
		queue: slices.Clone(queue),
		store: store,
	}, nil
}

// Enqueue appends a URL to the tail of the queue.
// The URL is not checked against earlier entries.
func (f *Frontier) Enqueue(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, url)
}

// Dequeue removes and returns the head of the queue.
// The bool result is false if the frontier is empty.
func (f *Frontier) Dequeue() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[0]
	f.queue[0] = ""
	f.queue = f.queue[1:]
	return url, true
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Pending returns a copy of the queue in dequeue order.
func (f *Frontier) Pending() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.queue)
}

// Flush writes the whole queue to the store.
func (f *Frontier) Flush(ctx context.Context) error {
	f.flushMu.Lock()
	defer f.flushMu.Unlock()

	queue := f.Pending()
	if queue == nil {
		queue = []string{}
	}
	if err := f.store.SaveQueue(ctx, queue); err != nil {
		return fmt.Errorf("flush frontier: %w", err)
	}
	return nil
}
