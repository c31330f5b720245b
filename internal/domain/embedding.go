package domain

import "context"

// Embedder is the shared text vectorization contract between layers.
// Implementations return unit-length vectors so that a plain dot product
// equals cosine similarity.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// Generator produces an answer for a question given retrieved context texts.
// Failure is recoverable by contract: callers fall back instead of failing.
type Generator interface {
	Generate(ctx context.Context, question string, contexts []string) (string, error)
}

// HealthChecker verifies collaborator availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// EmbeddingResult carries the embedding vector and token usage through the
// decorator chain.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}
