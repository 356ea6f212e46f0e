package mock

import (
	"context"

	"github.com/fwojciec/slowcrawl"
)

var _ slowcrawl.Frontier = (*Frontier)(nil)

// Frontier is a mock implementation of slowcrawl.Frontier.
type Frontier struct {
	EnqueueFn func(url string)
	DequeueFn func() (string, bool)
	LenFn     func() int
	FlushFn   func(ctx context.Context) error
}

func (f *Frontier) Enqueue(url string) {
	f.EnqueueFn(url)
}

func (f *Frontier) Dequeue() (string, bool) {
	return f.DequeueFn()
}

func (f *Frontier) Len() int {
	return f.LenFn()
}

func (f *Frontier) Flush(ctx context.Context) error {
	return f.FlushFn(ctx)
}

var _ slowcrawl.QueueStore = (*QueueStore)(nil)

// QueueStore is a mock implementation of slowcrawl.QueueStore.
type QueueStore struct {
	LoadQueueFn func(ctx context.Context) ([]string, error)
	SaveQueueFn func(ctx context.Context, queue []string) error
}

func (s *QueueStore) LoadQueue(ctx context.Context) ([]string, error) {
	return s.LoadQueueFn(ctx)
}

func (s *QueueStore) SaveQueue(ctx context.Context, queue []string) error {
	return s.SaveQueueFn(ctx, queue)
}

var _ slowcrawl.SeedSource = (*SeedSource)(nil)

// SeedSource is a mock implementation of slowcrawl.SeedSource.
type SeedSource struct {
	SeedsFn func(ctx context.Context) ([]string, error)
}

func (s *SeedSource) Seeds(ctx context.Context) ([]string, error) {
	return s.SeedsFn(ctx)
}

var _ slowcrawl.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of slowcrawl.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
