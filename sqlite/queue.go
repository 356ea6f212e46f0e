package sqlite

import (
	"context"

	"github.com/fwojciec/slowcrawl"
)

// Compile-time interface verification.
var _ slowcrawl.QueueStore = (*QueueStore)(nil)

// QueueFlushName identifies the frontier in the flushes table.
const QueueFlushName = "frontier"

// QueueStore implements slowcrawl.QueueStore using SQLite.
type QueueStore struct {
	db *DB
}

// NewQueueStore creates a new QueueStore.
func NewQueueStore(db *DB) *QueueStore {
	return &QueueStore{db: db}
}

// LoadQueue returns the persisted queue in dequeue order.
func (s *QueueStore) LoadQueue(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT url FROM frontier ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	queue := []string{}
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		queue = append(queue, url)
	}
	return queue, rows.Err()
}

// SaveQueue replaces the persisted queue with queue in a single transaction.
func (s *QueueStore) SaveQueue(ctx context.Context, queue []string) error {
	return rewriteSnapshot(ctx, s.db, "frontier", QueueFlushName,
		`INSERT INTO frontier (position, url) VALUES (?, ?)`,
		func(yield func([]any) bool) {
			for i, url := range queue {
				if !yield([]any{i, url}) {
					return
				}
			}
		})
}
