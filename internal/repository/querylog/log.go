// Package querylog holds served query records for the lifetime of the
// process so feedback can reference them later.
package querylog

import (
	"fmt"
	"sync"

	"github.com/kailas-cloud/ragtrial/internal/domain"
)

// Log is a concurrency-safe in-memory query record store.
// Records are immutable after Put; Get hands out copies of the stored value.
type Log struct {
	mu      sync.RWMutex
	records map[string]domain.QueryRecord
}

// New creates an empty query log.
func New() *Log {
	return &Log{records: make(map[string]domain.QueryRecord)}
}

// Put stores a record under its query id. The orchestrator mints unique ids,
// so overwrites do not happen in practice; last write wins if they do.
func (l *Log) Put(rec domain.QueryRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records[rec.ID] = rec
}

// Get returns the record for a query id, or ErrUnknownQueryID.
func (l *Log) Get(id string) (domain.QueryRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	rec, ok := l.records[id]
	if !ok {
		return domain.QueryRecord{}, fmt.Errorf("%w: %q", domain.ErrUnknownQueryID, id)
	}
	return rec, nil
}

// Len returns the number of stored records.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}
