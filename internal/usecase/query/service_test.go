package query

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ragtrial/internal/domain"
)

func TestAskVariantAConcatenatesTopTwo(t *testing.T) {
	svc, ret, gen, rec := newTestService(t, hitsOf("first chunk", "second chunk", "third chunk"))

	resp, err := svc.Ask(context.Background(), Request{
		Question: "what is this", TopK: 3, Variant: domain.VariantA,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resp.Answer != "first chunk second chunk" {
		t.Errorf("answer = %q, want top-two concatenation", resp.Answer)
	}
	if ret.lastLimit != 3 {
		t.Errorf("fetch limit = %d, want top_k as-is for arm A", ret.lastLimit)
	}
	if gen.calls != 0 {
		t.Error("arm A must not call the generator")
	}
	if len(rec.records) != 1 {
		t.Fatalf("expected one recorded query, got %d", len(rec.records))
	}
	if rec.records[0].ID != resp.QueryID {
		t.Error("recorded id must match the returned query id")
	}
}

func TestAskVariantASingleHit(t *testing.T) {
	svc, _, _, _ := newTestService(t, hitsOf("only chunk"))

	resp, err := svc.Ask(context.Background(), Request{Question: "q", TopK: 5, Variant: domain.VariantA})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Answer != "only chunk" {
		t.Errorf("answer = %q, want the single context verbatim", resp.Answer)
	}
}

func TestAskVariantBOverFetchesThenTrims(t *testing.T) {
	hits := hitsOf("c1", "c2", "c3", "c4", "c5", "c6")
	svc, ret, _, _ := newTestService(t, hits)

	resp, err := svc.Ask(context.Background(), Request{Question: "q", TopK: 2, Variant: domain.VariantB})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ret.lastLimit != 4 {
		t.Errorf("fetch limit = %d, want 2*top_k for arm B", ret.lastLimit)
	}
	if len(resp.Contexts) != 2 {
		t.Errorf("returned %d contexts, want trimmed to top_k", len(resp.Contexts))
	}
	if resp.Contexts[0].Text != "c1" || resp.Contexts[1].Text != "c2" {
		t.Errorf("trim must keep the highest-ranked hits, got %+v", resp.Contexts)
	}
	if resp.Answer != "generated answer" {
		t.Errorf("answer = %q, want the generated answer", resp.Answer)
	}
}

func TestAskVariantBGenerationInputsCapped(t *testing.T) {
	long := strings.Repeat("x", 600)
	svc, _, gen, _ := newTestService(t, hitsOf(long, "c2", "c3", "c4", "c5"))

	if _, err := svc.Ask(context.Background(), Request{Question: "q", TopK: 5, Variant: domain.VariantB}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(gen.lastContexts) != 3 {
		t.Fatalf("generator got %d contexts, want at most 3", len(gen.lastContexts))
	}
	if len([]rune(gen.lastContexts[0])) != 500 {
		t.Errorf("oversized context must be truncated to 500 chars, got %d", len([]rune(gen.lastContexts[0])))
	}
}

func TestAskVariantBFallsBackOnGenerationFailure(t *testing.T) {
	svc, _, gen, rec := newTestService(t, hitsOf("first", "second"))
	gen.err = errors.New("model unavailable")

	resp, err := svc.Ask(context.Background(), Request{Question: "q", TopK: 5, Variant: domain.VariantB})
	if err != nil {
		t.Fatalf("generation failure must not fail the request, got %v", err)
	}
	if resp.Answer != "first second" {
		t.Errorf("answer = %q, want the concatenation fallback", resp.Answer)
	}
	if rec.records[0].Answer != resp.Answer {
		t.Error("recorded answer must match the served answer")
	}
}

func TestAskNoHits(t *testing.T) {
	svc, _, _, _ := newTestService(t, nil)

	resp, err := svc.Ask(context.Background(), Request{Question: "q", Variant: domain.VariantA})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Answer != noContextAnswer {
		t.Errorf("answer = %q, want the no-context marker", resp.Answer)
	}

	// Arm B with no hits and a broken generator lands on the same marker.
	svcB, _, gen, _ := newTestService(t, nil)
	gen.err = errors.New("model unavailable")
	respB, err := svcB.Ask(context.Background(), Request{Question: "q", Variant: domain.VariantB})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if respB.Answer != noContextAnswer {
		t.Errorf("fallback answer = %q, want the no-context marker", respB.Answer)
	}
}

func TestAskDefaultsAndClampsTopK(t *testing.T) {
	svc, ret, _, _ := newTestService(t, hitsOf("c1"))

	if _, err := svc.Ask(context.Background(), Request{Question: "q", Variant: domain.VariantA}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ret.lastLimit != 5 {
		t.Errorf("zero top_k must use the default, limit = %d", ret.lastLimit)
	}

	if _, err := svc.Ask(context.Background(), Request{Question: "q", TopK: 500, Variant: domain.VariantA}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ret.lastLimit != 50 {
		t.Errorf("oversized top_k must clamp to the maximum, limit = %d", ret.lastLimit)
	}
}

func TestAskPassesLangFilter(t *testing.T) {
	svc, ret, _, _ := newTestService(t, hitsOf("c1"))

	if _, err := svc.Ask(context.Background(), Request{Question: "q", Lang: "en", Variant: domain.VariantA}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ret.lastLang != "en" {
		t.Errorf("lang filter = %q, want en", ret.lastLang)
	}
}

func TestAskEmbedFailure(t *testing.T) {
	ret := &mockRetriever{}
	rec := &mockRecorder{}
	boom := errors.New("provider down")
	svc := New(ret, &mockEmbedder{err: boom}, &mockGenerator{}, rec, 5, 50, zap.NewNop())

	_, err := svc.Ask(context.Background(), Request{Question: "q", Variant: domain.VariantA})
	if !errors.Is(err, boom) {
		t.Fatalf("embedding failures must propagate, got %v", err)
	}
	if len(rec.records) != 0 {
		t.Error("failed queries must not be recorded")
	}
}

func TestAskRecordsVariantAndLatency(t *testing.T) {
	svc, _, _, rec := newTestService(t, hitsOf("c1", "c2"))

	if _, err := svc.Ask(context.Background(), Request{Question: "how", Variant: domain.VariantB}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	record := rec.records[0]
	if record.Variant != domain.VariantB {
		t.Errorf("recorded variant = %s, want B", record.Variant)
	}
	if record.Question != "how" {
		t.Errorf("recorded question = %q", record.Question)
	}
	if record.LatencyMS < 0 {
		t.Errorf("latency must be non-negative, got %d", record.LatencyMS)
	}
	if record.CreatedAt.IsZero() {
		t.Error("created_at must be set")
	}
}
