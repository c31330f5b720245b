// Package query orchestrates one served query: embed, variant-aware
// retrieval, answer synthesis, outcome recording.
package query

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/ragtrial/internal/domain"
	"github.com/kailas-cloud/ragtrial/internal/metrics"
)

// Generation inputs are capped so the prompt stays bounded regardless of
// chunk sizes in the store.
const (
	maxGenContexts  = 3
	maxContextChars = 500
)

// noContextAnswer is returned when retrieval produces no hits.
const noContextAnswer = "no relevant context found"

// Request carries one query through the orchestrator.
type Request struct {
	Question string
	TopK     int
	Lang     string
	Variant  domain.Variant
}

// Response is the served outcome. QueryID is the handle feedback uses later.
type Response struct {
	QueryID  string
	Variant  domain.Variant
	Contexts []domain.Context
	Answer   string
}

// Service handles query orchestration across both experiment arms.
type Service struct {
	retriever Retriever
	embedder  Embedder
	generator Generator
	recorder  Recorder

	defaultTopK int
	maxTopK     int
	logger      *zap.Logger
}

// New creates a query service.
func New(
	retriever Retriever, embedder Embedder, generator Generator, recorder Recorder,
	defaultTopK, maxTopK int, logger *zap.Logger,
) *Service {
	return &Service{
		retriever:   retriever,
		embedder:    embedder,
		generator:   generator,
		recorder:    recorder,
		defaultTopK: defaultTopK,
		maxTopK:     maxTopK,
		logger:      logger,
	}
}

// Ask serves one query end to end and records its outcome. Both arms return
// at most TopK contexts; arm B over-fetches before trimming so generation
// sees the same candidate pool width regardless of TopK.
func (s *Service) Ask(ctx context.Context, req Request) (Response, error) {
	start := time.Now()

	topK := req.TopK
	if topK <= 0 {
		topK = s.defaultTopK
	}
	if s.maxTopK > 0 && topK > s.maxTopK {
		topK = s.maxTopK
	}

	embRes, err := s.embedder.Embed(ctx, req.Question)
	if err != nil {
		return Response{}, fmt.Errorf("vectorize question: %w", err)
	}

	hits, err := s.retriever.Search(ctx, embRes.Embedding, req.Variant.FetchLimit(topK), req.Lang)
	if err != nil {
		return Response{}, fmt.Errorf("search contexts: %w", err)
	}
	if len(hits) > topK {
		hits = hits[:topK]
	}

	answer := s.answer(ctx, req.Variant, req.Question, hits)

	record := domain.QueryRecord{
		ID:        uuid.NewString(),
		Variant:   req.Variant,
		Question:  req.Question,
		Contexts:  hits,
		Answer:    answer,
		LatencyMS: time.Since(start).Milliseconds(),
		CreatedAt: time.Now().UTC(),
	}
	s.recorder.Put(record)

	metrics.QueriesTotal.WithLabelValues(string(req.Variant)).Inc()
	metrics.QueryDuration.WithLabelValues(string(req.Variant)).Observe(time.Since(start).Seconds())

	s.logger.Debug("Query served",
		zap.String("query_id", record.ID),
		zap.String("variant", string(req.Variant)),
		zap.Int("contexts", len(hits)),
		zap.Int64("latency_ms", record.LatencyMS),
	)

	return Response{
		QueryID:  record.ID,
		Variant:  req.Variant,
		Contexts: hits,
		Answer:   answer,
	}, nil
}

// answer synthesizes the response text. Arm A concatenates; arm B generates,
// degrading to the concatenation when the generator fails. A generator
// failure never fails the request.
func (s *Service) answer(ctx context.Context, variant domain.Variant, question string, hits []domain.Context) string {
	if variant != domain.VariantB {
		return concatenate(hits)
	}

	generated, err := s.generator.Generate(ctx, question, promptContexts(hits))
	if err != nil {
		metrics.GenerationFallbacksTotal.Inc()
		s.logger.Warn("Generation failed, falling back to concatenation", zap.Error(err))
		return concatenate(hits)
	}
	return generated
}

// concatenate joins the first two context texts with a single space.
func concatenate(hits []domain.Context) string {
	if len(hits) == 0 {
		return noContextAnswer
	}
	if len(hits) == 1 {
		return hits[0].Text
	}
	return hits[0].Text + " " + hits[1].Text
}

// promptContexts caps the generation inputs: at most maxGenContexts texts,
// each truncated to maxContextChars runes.
func promptContexts(hits []domain.Context) []string {
	out := make([]string, 0, maxGenContexts)
	for _, h := range hits {
		if len(out) == maxGenContexts {
			break
		}
		text := h.Text
		if runes := []rune(text); len(runes) > maxContextChars {
			text = string(runes[:maxContextChars])
		}
		out = append(out, text)
	}
	return out
}
