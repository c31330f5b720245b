package query

import (
	"context"

	"github.com/kailas-cloud/ragtrial/internal/domain"
)

// Retriever runs KNN search against the vector store.
type Retriever interface {
	Search(ctx context.Context, vector []float32, limit int, lang string) ([]domain.Context, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Generator produces an answer from a question and supporting contexts.
type Generator interface {
	Generate(ctx context.Context, question string, contexts []string) (string, error)
}

// Recorder persists query records for later feedback lookup.
type Recorder interface {
	Put(record domain.QueryRecord)
}
