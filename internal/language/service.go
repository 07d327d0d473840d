// Package language is the provider-abstraction layer for natural
// language analysis of documents: it normalizes heterogeneous vendor
// responses into one stable model, dispatches requests to a named or
// default provider, and decides whether a document must be (re-)analyzed.
//
// The package computes nothing itself. Adding a vendor means adding one
// Provider implementation and a factory registration; the service, the
// eligibility gate and the listener never change.
package language

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"nltools/internal/docs"
	"nltools/internal/logger"
)

// TextExtractor is the text-extraction collaborator used by the blob and
// document paths. Extraction does not preserve byte-offset semantics, so
// those paths request no encoding.
type TextExtractor interface {
	ExtractText(ctx context.Context, blob *docs.Blob) (string, error)
}

// Service is the analysis façade. It resolves a provider (explicit name
// or configured default), validates inputs, delegates, and surfaces
// errors uniformly. It persists nothing: markers and responses are the
// caller's responsibility, which keeps the service pure and testable.
//
// Safe for concurrent use.
type Service struct {
	registry  *Registry
	extractor TextExtractor
	log       zerolog.Logger
}

// NewService wires the façade from its collaborators. A nil extractor is
// allowed for text-only callers; the blob and document paths then fail
// with an extraction error.
func NewService(registry *Registry, extractor TextExtractor) *Service {
	return &Service{
		registry:  registry,
		extractor: extractor,
		log:       logger.WithComponent("language"),
	}
}

// Registry exposes the provider registry, for callers that need
// provider capability information (e.g. the info command).
func (s *Service) Registry() *Registry {
	return s.registry
}

// AnalyzeText sends text to the named provider (blank name: the default)
// and returns the normalized response. An empty feature list is a caller
// contract violation. Provider failures are wrapped in an AnalysisError
// carrying the resolved provider name; the vendor cause is preserved.
func (s *Service) AnalyzeText(ctx context.Context, providerName, text string, features []Feature, encoding Encoding) (*AnalysisResponse, error) {
	const op = "AnalyzeText"

	if len(features) == 0 {
		return nil, WrapProcessingError(op, ErrNoFeatures, "")
	}

	provider, resolvedName, err := s.registry.Resolve(providerName)
	if err != nil {
		return nil, err
	}

	resp, err := provider.Process(ctx, AnalysisRequest{
		Text:     text,
		Features: features,
		Encoding: encoding,
	})
	if err != nil {
		return nil, &AnalysisError{Provider: resolvedName, Err: err}
	}

	s.log.Debug().
		Str("provider", resolvedName).
		Int("features", len(features)).
		Int("text_len", len(text)).
		Msg("Text analyzed")

	return resp, nil
}

// AnalyzeBlob extracts plain text from the blob and analyzes it. Token
// offsets in the result are unreliable because extraction loses byte
// positions, so no encoding is passed to the provider.
func (s *Service) AnalyzeBlob(ctx context.Context, providerName string, blob *docs.Blob, features []Feature) (*AnalysisResponse, error) {
	const op = "AnalyzeBlob"

	if blob == nil {
		return nil, WrapProcessingError(op, ErrNilBlob, "")
	}
	if len(features) == 0 {
		return nil, WrapProcessingError(op, ErrNoFeatures, "")
	}
	if s.extractor == nil {
		return nil, WrapProcessingError(op, ErrExtraction, "no text extractor configured")
	}

	text, err := s.extractor.ExtractText(ctx, blob)
	if err != nil {
		return nil, WrapProcessingError(op, fmt.Errorf("%w: %w", ErrExtraction, err), blob.MimeType)
	}

	return s.AnalyzeText(ctx, providerName, text, features, EncodingNone)
}

// AnalyzeDocument resolves the blob at fieldPath (blank: the primary
// content field) and analyzes it. A missing or empty blob is a caller
// contract violation.
func (s *Service) AnalyzeDocument(ctx context.Context, providerName string, doc *docs.Document, fieldPath string, features []Feature) (*AnalysisResponse, error) {
	const op = "AnalyzeDocument"

	if doc == nil {
		return nil, WrapProcessingError(op, ErrNilDocument, "")
	}
	if fieldPath == "" {
		fieldPath = docs.PrimaryBlobField
	}
	blob := doc.BlobAt(fieldPath)
	if blob == nil || len(blob.Data) == 0 {
		return nil, WrapProcessingError(op, ErrMissingBlob, fieldPath)
	}

	return s.AnalyzeBlob(ctx, providerName, blob, features)
}
