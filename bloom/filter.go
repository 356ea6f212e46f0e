// Package bloom provides a probabilistic prefilter for fingerprint lookups.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// MinCapacity is the smallest number of items a Filter is sized for.
const MinCapacity = 1024

// Filter answers "definitely not present" for fingerprint keys without
// consulting the backing ledger. False positives are possible; false
// negatives are not. Keys cannot be removed.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a Filter sized for n expected keys with the given false
// positive rate. n is raised to MinCapacity when smaller.
func NewFilter(n uint, fpRate float64) *Filter {
	if n < MinCapacity {
		n = MinCapacity
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add inserts a key.
func (f *Filter) Add(key string) {
	f.f.AddString(key)
}

// MayContain returns false only if the key was never added.
func (f *Filter) MayContain(key string) bool {
	return f.f.TestString(key)
}

// EstimatedCount returns the approximate number of keys in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}

// Capacity returns the number of bits backing the filter.
func (f *Filter) Capacity() uint {
	return f.f.Cap()
}
