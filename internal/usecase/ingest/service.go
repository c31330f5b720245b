// Package ingest turns raw content into content-addressed, embedded chunks
// in the vector store.
package ingest

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/kailas-cloud/ragtrial/internal/chunker"
	"github.com/kailas-cloud/ragtrial/internal/domain"
	"github.com/kailas-cloud/ragtrial/internal/extract"
	"github.com/kailas-cloud/ragtrial/internal/identity"
	"github.com/kailas-cloud/ragtrial/internal/metrics"
)

// defaultLang is stamped on raw-ingested chunks when the caller supplies no
// language, matching the upstream ingestion pipeline defaults.
const defaultLang = "en"

// probeText is a throwaway input used to discover the embedding dimension
// before the collection exists.
const probeText = "probe"

// Service handles document ingestion: extract, chunk, embed, upsert.
type Service struct {
	gateway       Gateway
	embedder      Embedder
	chunkMaxChars int
	logger        *zap.Logger

	// Collection bootstrap is lazy but runs at most effectively once; a
	// failed attempt stays retryable.
	mu      sync.Mutex
	ensured bool
}

// New creates an ingest service.
func New(gateway Gateway, embedder Embedder, chunkMaxChars int, logger *zap.Logger) *Service {
	if chunkMaxChars <= 0 {
		chunkMaxChars = chunker.DefaultMaxChars
	}
	return &Service{
		gateway:       gateway,
		embedder:      embedder,
		chunkMaxChars: chunkMaxChars,
		logger:        logger,
	}
}

// EnsureCollection bootstraps the collection if it does not exist yet,
// probing the embedding dimension with a throwaway call. Safe for concurrent
// first-touch; a pre-existing collection is left untouched.
func (s *Service) EnsureCollection(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ensured {
		return nil
	}

	exists, err := s.gateway.Exists(ctx)
	if err != nil {
		return fmt.Errorf("check collection: %w", err)
	}
	if exists {
		s.ensured = true
		return nil
	}

	probe, err := s.embedder.Embed(ctx, probeText)
	if err != nil {
		return fmt.Errorf("probe embedding dimension: %w", err)
	}

	if err := s.gateway.Ensure(ctx, len(probe.Embedding)); err != nil {
		return fmt.Errorf("ensure collection: %w", err)
	}

	s.logger.Info("Collection created", zap.Int("dimensions", len(probe.Embedding)))
	s.ensured = true
	return nil
}

// IngestText chunks text and upserts every chunk under its content-addressed
// id. Returns the number of chunks written. Embedding or store failures
// propagate: ingestion fails loudly rather than degrading silently.
func (s *Service) IngestText(ctx context.Context, text string, payload domain.Payload) (int, error) {
	if err := s.EnsureCollection(ctx); err != nil {
		return 0, err
	}

	chunks := chunker.Split(text, s.chunkMaxChars)
	if len(chunks) == 0 {
		return 0, domain.ErrEmptyBody
	}

	for _, chunk := range chunks {
		result, err := s.embedder.Embed(ctx, chunk)
		if err != nil {
			return 0, fmt.Errorf("embed chunk: %w", err)
		}

		doc := domain.Document{
			ID:      identity.DocumentID(chunk),
			Text:    chunk,
			Vector:  result.Embedding,
			Payload: payload,
		}
		if err := s.gateway.Upsert(ctx, doc); err != nil {
			return 0, fmt.Errorf("upsert chunk: %w", err)
		}
		metrics.IngestedChunksTotal.Inc()
	}

	s.logger.Debug("Ingested text",
		zap.Int("chunks", len(chunks)),
		zap.String("lang", payload.Lang),
	)
	return len(chunks), nil
}

// IngestRaw extracts plain text from raw bytes according to the declared
// content type, then ingests it. Rejections carry a categorized reason and
// write nothing to the store.
func (s *Service) IngestRaw(ctx context.Context, body []byte, contentType string, payload domain.Payload) (int, error) {
	text, err := extract.Text(body, contentType)
	if err != nil {
		return 0, err
	}

	if payload.Lang == "" {
		payload.Lang = defaultLang
	}

	return s.IngestText(ctx, text, payload)
}
