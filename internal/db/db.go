// Package db defines the storage port the vector store adapter implements.
package db

import (
	"context"
	"time"
)

// Store is the database facade. Consumers depend on narrow sub-interfaces.
type Store interface {
	Pinger
	HashStore
	KVStore
	IndexManager
	Searcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HashStore provides hash-based point storage.
type HashStore interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// KVStore provides simple key-value operations (embedding cache).
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// IndexManager provides FT index lifecycle operations.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Searcher provides KNN search over FT indexes.
type Searcher interface {
	SearchKNN(ctx context.Context, q *KNNQuery) (*SearchResult, error)
}

// IndexDefinition describes the single-vector HASH index ragtrial uses:
// one FLAT FLOAT32 vector field plus TAG fields for payload filtering.
type IndexDefinition struct {
	Name      string
	Prefixes  []string
	TagFields []string
	Vector    VectorField
}

// VectorField describes the vector component of an index.
type VectorField struct {
	Name     string
	Dim      int
	Distance string // COSINE, L2, IP
}

// KNNQuery is the input for vector similarity search.
type KNNQuery struct {
	IndexName    string
	Vector       []float32
	K            int
	TagFilter    TagFilter // optional exact-match pre-filter
	ReturnFields []string
}

// TagFilter restricts search to rows whose tag field equals Value exactly.
// Zero value means no filtering.
type TagFilter struct {
	Field string
	Value string
}

// IsZero reports whether no filter was requested.
func (f TagFilter) IsZero() bool { return f.Field == "" || f.Value == "" }

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search, ordered by descending
// similarity score.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
