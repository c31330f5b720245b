package query

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ragtrial/internal/domain"
)

// mockRetriever records the search it was asked to run.
type mockRetriever struct {
	hits      []domain.Context
	err       error
	lastLimit int
	lastLang  string
}

func (m *mockRetriever) Search(_ context.Context, _ []float32, limit int, lang string) ([]domain.Context, error) {
	m.lastLimit = limit
	m.lastLang = lang
	if m.err != nil {
		return nil, m.err
	}
	if len(m.hits) > limit {
		return m.hits[:limit], nil
	}
	return m.hits, nil
}

type mockEmbedder struct {
	vec []float32
	err error
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec}, nil
}

type mockGenerator struct {
	answer       string
	err          error
	calls        int
	lastContexts []string
}

func (m *mockGenerator) Generate(_ context.Context, _ string, contexts []string) (string, error) {
	m.calls++
	m.lastContexts = contexts
	if m.err != nil {
		return "", m.err
	}
	return m.answer, nil
}

type mockRecorder struct {
	records []domain.QueryRecord
}

func (m *mockRecorder) Put(record domain.QueryRecord) {
	m.records = append(m.records, record)
}

func hitsOf(texts ...string) []domain.Context {
	out := make([]domain.Context, 0, len(texts))
	for i, t := range texts {
		out = append(out, domain.Context{Text: t, Score: 1.0 - float64(i)*0.1})
	}
	return out
}

func newTestService(t *testing.T, hits []domain.Context) (*Service, *mockRetriever, *mockGenerator, *mockRecorder) {
	t.Helper()
	ret := &mockRetriever{hits: hits}
	gen := &mockGenerator{answer: "generated answer"}
	rec := &mockRecorder{}
	svc := New(ret, &mockEmbedder{vec: []float32{0.1, 0.2}}, gen, rec, 5, 50, zap.NewNop())
	return svc, ret, gen, rec
}
