package eval

import (
	"context"

	"github.com/kailas-cloud/ragtrial/internal/domain"
	"github.com/kailas-cloud/ragtrial/internal/usecase/query"
)

// Querier serves queries through the live orchestrator, one arm at a time.
type Querier interface {
	Ask(ctx context.Context, req query.Request) (query.Response, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
