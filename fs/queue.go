package fs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fwojciec/slowcrawl"
)

// Ensure QueueFile implements slowcrawl.QueueStore at compile time.
var _ slowcrawl.QueueStore = (*QueueFile)(nil)

// QueueFile stores the frontier as a JSON document of the form
// {"queue": ["https://...", ...]}.
type QueueFile struct {
	path string
}

// NewQueueFile returns a QueueFile backed by path. The file need not exist.
func NewQueueFile(path string) *QueueFile {
	return &QueueFile{path: path}
}

type queueDocument struct {
	Queue *[]string `json:"queue"`
}

// LoadQueue reads the queue from disk, falling back to the bundled sample
// when the file does not exist.
func (f *QueueFile) LoadQueue(_ context.Context) ([]string, error) {
	data, err := readOrSample(f.path, "queue.sample.json")
	if err != nil {
		return nil, err
	}

	var doc queueDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	if doc.Queue == nil {
		return nil, slowcrawl.Errorf(slowcrawl.EINVALID, "%s: missing \"queue\" list", f.path)
	}
	return *doc.Queue, nil
}

// SaveQueue replaces the file with queue.
func (f *QueueFile) SaveQueue(_ context.Context, queue []string) error {
	if queue == nil {
		queue = []string{}
	}
	return writeJSON(f.path, queueDocument{Queue: &queue})
}
