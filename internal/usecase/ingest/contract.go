package ingest

import (
	"context"

	"github.com/kailas-cloud/ragtrial/internal/domain"
)

// Gateway writes documents to the vector store.
type Gateway interface {
	Exists(ctx context.Context) (bool, error)
	Ensure(ctx context.Context, dim int) error
	Upsert(ctx context.Context, doc domain.Document) error
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
