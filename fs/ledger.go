package fs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fwojciec/slowcrawl"
)

// Ensure LedgerFile implements slowcrawl.LedgerStore at compile time.
var _ slowcrawl.LedgerStore = (*LedgerFile)(nil)

// LedgerFile stores fingerprints as a JSON document with one object per
// category, each mapping a hash key to its list of values:
//
//	{"url": {"<hash>": ["https://..."]}, "doc": {"<hash>": ["https://..."]}}
type LedgerFile struct {
	path string
}

// NewLedgerFile returns a LedgerFile backed by path. The file need not exist.
func NewLedgerFile(path string) *LedgerFile {
	return &LedgerFile{path: path}
}

// LoadLedger reads the fingerprints from disk, falling back to the bundled
// sample when the file does not exist. Both categories must be present.
func (f *LedgerFile) LoadLedger(_ context.Context) (*slowcrawl.Fingerprints, error) {
	data, err := readOrSample(f.path, "fingerprint.sample.json")
	if err != nil {
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	for _, cat := range []slowcrawl.Category{slowcrawl.CategoryURL, slowcrawl.CategoryDoc} {
		if _, ok := raw[cat.String()]; !ok {
			return nil, slowcrawl.Errorf(slowcrawl.EINVALID, "%s: missing %q category", f.path, cat.String())
		}
	}

	fp := slowcrawl.NewFingerprints()
	if err := json.Unmarshal(data, fp); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	if fp.URL == nil {
		fp.URL = make(map[string][]string)
	}
	if fp.Doc == nil {
		fp.Doc = make(map[string][]string)
	}
	return fp, nil
}

// SaveLedger replaces the file with fp.
func (f *LedgerFile) SaveLedger(_ context.Context, fp *slowcrawl.Fingerprints) error {
	if fp == nil {
		fp = slowcrawl.NewFingerprints()
	}
	return writeJSON(f.path, fp)
}
