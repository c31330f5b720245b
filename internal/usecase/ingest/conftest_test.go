package ingest

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ragtrial/internal/domain"
)

// mockGateway records upserts keyed by document id.
type mockGateway struct {
	existsFn  func(ctx context.Context) (bool, error)
	ensureFn  func(ctx context.Context, dim int) error
	upsertFn  func(ctx context.Context, doc domain.Document) error
	upserts   []domain.Document
	ensureDim int
}

func (m *mockGateway) Exists(ctx context.Context) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx)
	}
	return false, nil
}

func (m *mockGateway) Ensure(ctx context.Context, dim int) error {
	m.ensureDim = dim
	if m.ensureFn != nil {
		return m.ensureFn(ctx, dim)
	}
	return nil
}

func (m *mockGateway) Upsert(ctx context.Context, doc domain.Document) error {
	m.upserts = append(m.upserts, doc)
	if m.upsertFn != nil {
		return m.upsertFn(ctx, doc)
	}
	return nil
}

// fixedEmbedder returns the same small vector for every input.
type fixedEmbedder struct {
	vec   []float32
	err   error
	calls int
}

func (e *fixedEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	e.calls++
	if e.err != nil {
		return domain.EmbeddingResult{}, e.err
	}
	return domain.EmbeddingResult{Embedding: e.vec}, nil
}

func newTestService(t *testing.T) (*Service, *mockGateway, *fixedEmbedder) {
	t.Helper()
	gw := &mockGateway{}
	emb := &fixedEmbedder{vec: []float32{0.1, 0.2, 0.3}}
	svc := New(gw, emb, 480, zap.NewNop())
	return svc, gw, emb
}
