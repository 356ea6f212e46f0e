package crawl

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/fwojciec/slowcrawl"
	"github.com/fwojciec/slowcrawl/bloom"
)

// Compile-time interface verification.
var _ slowcrawl.FingerprintStore = (*Ledger)(nil)

// ledgerFalsePositiveRate is the acceptable false positive rate of the
// prefilter. A false positive only costs a map lookup.
const ledgerFalsePositiveRate = 0.01

// ledgerHeadroom is the number of new keys the prefilter is sized for on
// top of those loaded from the store.
const ledgerHeadroom = 10000

// Ledger is a fingerprint store keyed by ComputeHash. Each category maps a
// hash key to the set of values recorded under it; a key exists only while
// its set is non-empty. It is safe for concurrent use by multiple goroutines.
type Ledger struct {
	mu     sync.RWMutex
	sets   map[slowcrawl.Category]map[string]map[string]struct{}
	filter *bloom.Filter

	flushMu sync.Mutex
	store   slowcrawl.LedgerStore
}

// OpenLedger loads the persisted fingerprints from store.
func OpenLedger(ctx context.Context, store slowcrawl.LedgerStore) (*Ledger, error) {
	fp, err := store.LoadLedger(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	if fp == nil {
		fp = slowcrawl.NewFingerprints()
	}

	l := &Ledger{
		sets: map[slowcrawl.Category]map[string]map[string]struct{}{
			slowcrawl.CategoryURL: make(map[string]map[string]struct{}, len(fp.URL)),
			slowcrawl.CategoryDoc: make(map[string]map[string]struct{}, len(fp.Doc)),
		},
		filter: bloom.NewFilter(uint(len(fp.URL)+len(fp.Doc))+ledgerHeadroom, ledgerFalsePositiveRate),
		store:  store,
	}
	// URL keys are derived from their members, so they are recomputed
	// rather than trusted. Doc keys cannot be, and must already be hashes.
	for _, values := range fp.URL {
		for _, v := range values {
			l.insert(slowcrawl.CategoryURL, ComputeHash(v), v)
		}
	}
	for key, values := range fp.Doc {
		if len(values) == 0 {
			continue
		}
		if !isHashKey(key) {
			return nil, slowcrawl.Errorf(slowcrawl.EINVALID, "ledger doc key %q is not a content fingerprint", key)
		}
		for _, v := range values {
			l.insert(slowcrawl.CategoryDoc, key, v)
		}
	}
	return l, nil
}

// isHashKey reports whether key has the form produced by ComputeHash.
func isHashKey(key string) bool {
	if len(key) != 16 {
		return false
	}
	for _, c := range key {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// Exists reports whether value has been recorded under cat. For CategoryURL
// the exact URL must be a member of its hash set; for CategoryDoc the
// presence of the content hash is enough.
func (l *Ledger) Exists(cat slowcrawl.Category, value string) (bool, error) {
	if !cat.Valid() {
		return false, fmt.Errorf("exists %v: %w", cat, slowcrawl.ErrInvalidCategory)
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.exists(cat, ComputeHash(value), value), nil
}

// Record adds value to the ledger under cat. For CategoryDoc the recorded
// member is sourceURL; for CategoryURL sourceURL is ignored.
// Recording something that already exists is a no-op.
func (l *Ledger) Record(cat slowcrawl.Category, value, sourceURL string) error {
	if !cat.Valid() {
		return fmt.Errorf("record %v: %w", cat, slowcrawl.ErrInvalidCategory)
	}
	key := ComputeHash(value)
	member := value
	if cat == slowcrawl.CategoryDoc {
		member = sourceURL
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.exists(cat, key, value) {
		return nil
	}
	l.insert(cat, key, member)
	return nil
}

// Forget removes a member from the hash set of value under cat, deleting
// the hash key once its set is empty. For CategoryDoc the removed member is
// sourceURL. Forgetting something never recorded is a no-op.
func (l *Ledger) Forget(cat slowcrawl.Category, value, sourceURL string) error {
	if !cat.Valid() {
		return fmt.Errorf("forget %v: %w", cat, slowcrawl.ErrInvalidCategory)
	}
	key := ComputeHash(value)
	member := value
	if cat == slowcrawl.CategoryDoc {
		member = sourceURL
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	set, ok := l.sets[cat][key]
	if !ok {
		return nil
	}
	delete(set, member)
	if len(set) == 0 {
		delete(l.sets[cat], key)
	}
	return nil
}

// ExistsURL returns true if this exact URL has been recorded.
func (l *Ledger) ExistsURL(url string) bool {
	ok, _ := l.Exists(slowcrawl.CategoryURL, url)
	return ok
}

// ExistsDoc returns true if content with the same hash has been recorded.
func (l *Ledger) ExistsDoc(content string) bool {
	ok, _ := l.Exists(slowcrawl.CategoryDoc, content)
	return ok
}

// RecordURL marks the URL as seen.
func (l *Ledger) RecordURL(url string) {
	_ = l.Record(slowcrawl.CategoryURL, url, "")
}

// RecordDoc marks content as seen, served by sourceURL.
func (l *Ledger) RecordDoc(content, sourceURL string) {
	_ = l.Record(slowcrawl.CategoryDoc, content, sourceURL)
}

// ForgetURL removes the URL so it can be fetched again.
func (l *Ledger) ForgetURL(url string) {
	_ = l.Forget(slowcrawl.CategoryURL, url, "")
}

// ForgetDoc removes sourceURL from the sources recorded for content.
func (l *Ledger) ForgetDoc(content, sourceURL string) {
	_ = l.Forget(slowcrawl.CategoryDoc, content, sourceURL)
}

// Len returns the number of hash keys recorded under cat.
func (l *Ledger) Len(cat slowcrawl.Category) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.sets[cat])
}

// Snapshot returns the serialized form of the ledger. Values within each
// set are sorted so that equal ledgers produce equal snapshots.
func (l *Ledger) Snapshot() *slowcrawl.Fingerprints {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return &slowcrawl.Fingerprints{
		URL: snapshotCategory(l.sets[slowcrawl.CategoryURL]),
		Doc: snapshotCategory(l.sets[slowcrawl.CategoryDoc]),
	}
}

// Flush writes both categories to the store.
func (l *Ledger) Flush(ctx context.Context) error {
	l.flushMu.Lock()
	defer l.flushMu.Unlock()

	if err := l.store.SaveLedger(ctx, l.Snapshot()); err != nil {
		return fmt.Errorf("flush ledger: %w", err)
	}
	return nil
}

// exists must be called with l.mu held.
func (l *Ledger) exists(cat slowcrawl.Category, key, value string) bool {
	if !l.filter.MayContain(filterKey(cat, key)) {
		return false
	}
	set, ok := l.sets[cat][key]
	if !ok {
		return false
	}
	if cat == slowcrawl.CategoryDoc {
		return true
	}
	_, ok = set[value]
	return ok
}

// insert must be called with l.mu held for writing.
func (l *Ledger) insert(cat slowcrawl.Category, key, member string) {
	set, ok := l.sets[cat][key]
	if !ok {
		set = make(map[string]struct{}, 1)
		l.sets[cat][key] = set
	}
	set[member] = struct{}{}
	l.filter.Add(filterKey(cat, key))
}

func filterKey(cat slowcrawl.Category, key string) string {
	return cat.String() + ":" + key
}

func snapshotCategory(sets map[string]map[string]struct{}) map[string][]string {
	out := make(map[string][]string, len(sets))
	for key, set := range sets {
		values := make([]string, 0, len(set))
		for v := range set {
			values = append(values, v)
		}
		slices.Sort(values)
		out[key] = values
	}
	return out
}
