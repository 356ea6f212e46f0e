package sqlite

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/fwojciec/slowcrawl"
)

// Compile-time interface verification.
var _ slowcrawl.LedgerStore = (*LedgerStore)(nil)

// LedgerFlushName identifies the fingerprint ledger in the flushes table.
const LedgerFlushName = "fingerprints"

// LedgerStore implements slowcrawl.LedgerStore using SQLite. Each row is one
// (category, hash, value) member of a hash set.
type LedgerStore struct {
	db *DB
}

// NewLedgerStore creates a new LedgerStore.
func NewLedgerStore(db *DB) *LedgerStore {
	return &LedgerStore{db: db}
}

// LoadLedger returns all persisted fingerprints.
func (s *LedgerStore) LoadLedger(ctx context.Context) (*slowcrawl.Fingerprints, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, hash, value
		FROM fingerprints
		ORDER BY category, hash, value
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fp := slowcrawl.NewFingerprints()
	for rows.Next() {
		var category, hash, value string
		if err := rows.Scan(&category, &hash, &value); err != nil {
			return nil, err
		}
		cat, err := slowcrawl.ParseCategory(category)
		if err != nil {
			return nil, fmt.Errorf("category %q: %w", category, err)
		}
		entries := categoryEntries(fp, cat)
		entries[hash] = append(entries[hash], value)
	}
	return fp, rows.Err()
}

// SaveLedger replaces all persisted fingerprints with fp in a single
// transaction.
func (s *LedgerStore) SaveLedger(ctx context.Context, fp *slowcrawl.Fingerprints) error {
	if fp == nil {
		fp = slowcrawl.NewFingerprints()
	}
	return rewriteSnapshot(ctx, s.db, "fingerprints", LedgerFlushName,
		`INSERT INTO fingerprints (category, hash, value) VALUES (?, ?, ?)`,
		func(yield func([]any) bool) {
			for _, cat := range []slowcrawl.Category{slowcrawl.CategoryURL, slowcrawl.CategoryDoc} {
				entries := categoryEntries(fp, cat)
				for _, hash := range slices.Sorted(maps.Keys(entries)) {
					for _, value := range entries[hash] {
						if !yield([]any{cat.String(), hash, value}) {
							return
						}
					}
				}
			}
		})
}

func categoryEntries(fp *slowcrawl.Fingerprints, cat slowcrawl.Category) map[string][]string {
	if cat == slowcrawl.CategoryDoc {
		return fp.Doc
	}
	return fp.URL
}
