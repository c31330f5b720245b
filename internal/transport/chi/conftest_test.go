package chi

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ragtrial/internal/domain"
	"github.com/kailas-cloud/ragtrial/internal/repository/querylog"
	evaluc "github.com/kailas-cloud/ragtrial/internal/usecase/eval"
	feedbackuc "github.com/kailas-cloud/ragtrial/internal/usecase/feedback"
	healthuc "github.com/kailas-cloud/ragtrial/internal/usecase/health"
	ingestuc "github.com/kailas-cloud/ragtrial/internal/usecase/ingest"
	queryuc "github.com/kailas-cloud/ragtrial/internal/usecase/query"
)

// fakeGateway is an in-memory vector store good enough for transport tests:
// Search returns every stored document scored by insertion order.
type fakeGateway struct {
	docs []domain.Document
}

func (g *fakeGateway) Exists(context.Context) (bool, error) { return true, nil }

func (g *fakeGateway) Ensure(context.Context, int) error { return nil }

func (g *fakeGateway) Upsert(_ context.Context, doc domain.Document) error {
	g.docs = append(g.docs, doc)
	return nil
}

func (g *fakeGateway) Search(_ context.Context, _ []float32, limit int, lang string) ([]domain.Context, error) {
	out := make([]domain.Context, 0, limit)
	for i, doc := range g.docs {
		if len(out) == limit {
			break
		}
		if lang != "" && doc.Payload.Lang != lang {
			continue
		}
		out = append(out, domain.Context{
			Text:  doc.Text,
			Score: 1.0 - float64(i)*0.01,
			Lang:  doc.Payload.Lang,
		})
	}
	return out, nil
}

type fakeEmbedder struct{ err error }

func (f fakeEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	if f.err != nil {
		return domain.EmbeddingResult{}, f.err
	}
	// Cheap deterministic vector keyed on length.
	return domain.EmbeddingResult{Embedding: []float32{float32(len(text)), 1, 2}}, nil
}

type fakeGenerator struct {
	answer string
	err    error
}

func (f fakeGenerator) Generate(context.Context, string, []string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

type testEnv struct {
	server  *Server
	gateway *fakeGateway
	ts      *httptest.Server
}

func newTestEnv(t *testing.T, emb fakeEmbedder, gen fakeGenerator, pinger fakePinger) *testEnv {
	t.Helper()
	logger := zap.NewNop()

	gateway := &fakeGateway{}
	log := querylog.New()

	ingestSvc := ingestuc.New(gateway, emb, 480, logger)
	querySvc := queryuc.New(gateway, emb, gen, log, 5, 50, logger)
	feedbackSvc := feedbackuc.New(log)
	evalSvc := evaluc.New(querySvc, emb, 5, logger)
	healthSvc := healthuc.New(pinger, nil)

	dir := t.TempDir()
	paths := EvalPaths{
		TestSet:  filepath.Join(dir, "qd_test.json"),
		Artifact: filepath.Join(dir, "output_offline.json"),
	}

	server := NewServer(ingestSvc, querySvc, feedbackSvc, evalSvc, healthSvc, paths, logger)
	ts := httptest.NewServer(server.Routes())
	t.Cleanup(ts.Close)

	return &testEnv{server: server, gateway: gateway, ts: ts}
}
