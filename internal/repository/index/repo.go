// Package index is the vector store gateway: collection bootstrap, point
// upsert and filtered similarity search over one named collection.
package index

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/kailas-cloud/ragtrial/internal/db"
	"github.com/kailas-cloud/ragtrial/internal/domain"
)

const (
	contentField = "__content"
	vectorField  = "__vector"
	scoreField   = "__vector_score"
)

// store is the consumer interface for the gateway (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
}

// Repo is the gateway over one collection's FT index.
type Repo struct {
	store      store
	collection string
}

// New creates a vector store gateway for the named collection.
func New(s store, collection string) *Repo {
	return &Repo{store: s, collection: collection}
}

func (r *Repo) indexName() string {
	return fmt.Sprintf("%s%s:idx", domain.KeyPrefix, r.collection)
}

func (r *Repo) keyPrefix() string {
	return fmt.Sprintf("%s%s:", domain.KeyPrefix, r.collection)
}

// Exists reports whether the collection's index has been created.
func (r *Repo) Exists(ctx context.Context) (bool, error) {
	ok, err := r.store.IndexExists(ctx, r.indexName())
	if err != nil {
		return false, fmt.Errorf("index exists %s: %w", r.collection, err)
	}
	return ok, nil
}

// Ensure creates the collection index with the given embedding dimension and
// cosine distance. Idempotent: a pre-existing index is left untouched, and a
// concurrent creator winning the race is a no-op, not an error. Dimension of
// an existing index is not verified against dim.
func (r *Repo) Ensure(ctx context.Context, dim int) error {
	def := &db.IndexDefinition{
		Name:      r.indexName(),
		Prefixes:  []string{r.keyPrefix()},
		TagFields: []string{"lang", "url", "section"},
		Vector:    db.VectorField{Name: vectorField, Dim: dim, Distance: "COSINE"},
	}

	if err := r.store.CreateIndex(ctx, def); err != nil {
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index %s: %w", r.collection, err)
	}
	return nil
}

// Upsert writes a document point keyed by its content-addressed id.
// Writing the same id again overwrites the prior vector and payload.
func (r *Repo) Upsert(ctx context.Context, doc domain.Document) error {
	fields := doc.Payload.Fields()
	fields[contentField] = doc.Text
	fields[vectorField] = vectorToBytes(doc.Vector)

	key := r.keyPrefix() + strconv.FormatInt(doc.ID, 10)
	if err := r.store.HSet(ctx, key, fields); err != nil {
		return fmt.Errorf("upsert document %d: %w", doc.ID, err)
	}
	return nil
}

// Search returns up to limit hits ordered by descending similarity score.
// A non-empty lang restricts results to rows whose lang tag matches exactly.
func (r *Repo) Search(ctx context.Context, vector []float32, limit int, lang string) ([]domain.Context, error) {
	q := &db.KNNQuery{
		IndexName:    r.indexName(),
		Vector:       vector,
		K:            limit,
		ReturnFields: []string{contentField, scoreField, "lang", "url", "section"},
	}
	if lang != "" {
		q.TagFilter = db.TagFilter{Field: "lang", Value: lang}
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		// An index that was never created holds no documents.
		if errors.Is(err, db.ErrIndexNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("search knn %s: %w", r.collection, err)
	}
	if sr == nil || sr.Total == 0 {
		return nil, nil
	}

	contexts := make([]domain.Context, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		contexts = append(contexts, domain.Context{
			Text:    entry.Fields[contentField],
			Score:   entry.Score,
			Lang:    entry.Fields["lang"],
			URL:     entry.Fields["url"],
			Section: entry.Fields["section"],
		})
	}
	return contexts, nil
}

func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
