package mock

import (
	"context"

	"github.com/fwojciec/slowcrawl"
)

var _ slowcrawl.FingerprintStore = (*FingerprintStore)(nil)

// FingerprintStore is a mock implementation of slowcrawl.FingerprintStore.
type FingerprintStore struct {
	ExistsURLFn func(url string) bool
	ExistsDocFn func(content string) bool
	RecordURLFn func(url string)
	RecordDocFn func(content, sourceURL string)
	FlushFn     func(ctx context.Context) error
}

func (s *FingerprintStore) ExistsURL(url string) bool {
	return s.ExistsURLFn(url)
}

func (s *FingerprintStore) ExistsDoc(content string) bool {
	return s.ExistsDocFn(content)
}

func (s *FingerprintStore) RecordURL(url string) {
	s.RecordURLFn(url)
}

func (s *FingerprintStore) RecordDoc(content, sourceURL string) {
	s.RecordDocFn(content, sourceURL)
}

func (s *FingerprintStore) Flush(ctx context.Context) error {
	return s.FlushFn(ctx)
}

var _ slowcrawl.LedgerStore = (*LedgerStore)(nil)

// LedgerStore is a mock implementation of slowcrawl.LedgerStore.
type LedgerStore struct {
	LoadLedgerFn func(ctx context.Context) (*slowcrawl.Fingerprints, error)
	SaveLedgerFn func(ctx context.Context, fp *slowcrawl.Fingerprints) error
}

func (s *LedgerStore) LoadLedger(ctx context.Context) (*slowcrawl.Fingerprints, error) {
	return s.LoadLedgerFn(ctx)
}

func (s *LedgerStore) SaveLedger(ctx context.Context, fp *slowcrawl.Fingerprints) error {
	return s.SaveLedgerFn(ctx, fp)
}
