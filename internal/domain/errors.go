package domain

import "errors"

var (
	// ErrUnknownVariant signals an experiment arm token other than A or B.
	ErrUnknownVariant = errors.New("unknown variant")
	// ErrUnknownWinner signals a feedback outcome other than A, B or tie.
	ErrUnknownWinner = errors.New("unknown winner")
	// ErrUnknownQueryID signals feedback referencing a query id never served.
	ErrUnknownQueryID = errors.New("unknown query id")

	// ErrEmptyBody signals an ingestion request with no content.
	ErrEmptyBody = errors.New("empty body")
	// ErrUnreadableContent signals content that could not be decoded to text.
	ErrUnreadableContent = errors.New("unreadable content")
	// ErrUnsupportedContentType signals a content type the extractor cannot handle.
	ErrUnsupportedContentType = errors.New("unsupported content type")

	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrGenerationFailed signals an answer generation failure.
	// The query orchestrator recovers from it; it never fails a request.
	ErrGenerationFailed = errors.New("generation failed")
)
