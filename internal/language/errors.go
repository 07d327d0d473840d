package language

import (
	"errors"
	"fmt"
)

// Common analysis errors
var (
	// ErrInvalidArgument is the root of all caller-contract violations.
	// These are caller bugs and must never be retried.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNoFeatures is returned when a request carries no analysis features.
	ErrNoFeatures = fmt.Errorf("the feature list cannot be empty: %w", ErrInvalidArgument)

	// ErrUnknownFeature is returned for a feature name that is not part of
	// the Feature enum.
	ErrUnknownFeature = fmt.Errorf("unknown analysis feature: %w", ErrInvalidArgument)

	// ErrUnknownEncoding is returned for an encoding name other than the
	// UTF8/UTF16/UTF32 spellings.
	ErrUnknownEncoding = fmt.Errorf("unknown text encoding: %w", ErrInvalidArgument)

	// ErrNilBlob is returned when the input blob is nil.
	ErrNilBlob = fmt.Errorf("input blob cannot be nil: %w", ErrInvalidArgument)

	// ErrNilDocument is returned when the input document is nil.
	ErrNilDocument = fmt.Errorf("input document cannot be nil: %w", ErrInvalidArgument)

	// ErrMissingBlob is returned when a document has no blob (or an empty
	// one) at the requested field.
	ErrMissingBlob = fmt.Errorf("document has no blob at the requested field: %w", ErrInvalidArgument)

	// ErrUnknownProvider is returned when a provider name cannot be
	// resolved, including a blank name whose configured default is itself
	// unregistered.
	ErrUnknownProvider = errors.New("unknown natural language provider")

	// ErrExtraction is returned when the text-extraction collaborator fails.
	ErrExtraction = errors.New("text extraction failed")

	// ErrAnalysisFailed is returned when the vendor call fails for any
	// reason: network, auth, quota, unsupported language, malformed
	// vendor response.
	ErrAnalysisFailed = errors.New("natural language analysis failed")
)

// ProcessingError wraps errors with additional context about the analysis failure.
type ProcessingError struct {
	// Op is the operation that failed (e.g., "AnalyzeText", "AnalyzeBlob").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *ProcessingError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("language: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("language: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// NewProcessingError creates a new ProcessingError with the specified operation and underlying error.
func NewProcessingError(op string, err error, details string) *ProcessingError {
	return &ProcessingError{
		Op:      op,
		Err:     err,
		Details: details,
	}
}

// WrapProcessingError wraps an error as a ProcessingError if it isn't already one.
func WrapProcessingError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var procErr *ProcessingError
	if errors.As(err, &procErr) {
		return err // Already wrapped
	}

	return NewProcessingError(op, err, details)
}

// UnknownProviderError reports a provider name that is not registered.
type UnknownProviderError struct {
	// Name is the provider name that failed to resolve. When a blank name
	// fell through to the default, this is the default name.
	Name string
}

// Error implements the error interface.
func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown natural language provider: %q", e.Name)
}

// Is matches the ErrUnknownProvider sentinel.
func (e *UnknownProviderError) Is(target error) bool {
	return target == ErrUnknownProvider
}

// AnalysisError reports a vendor-call failure, preserving the original cause.
type AnalysisError struct {
	// Provider is the resolved name of the provider that failed.
	Provider string

	// Err is the vendor error, untouched.
	Err error
}

// Error implements the error interface.
func (e *AnalysisError) Error() string {
	return fmt.Sprintf("provider %q analysis failed: %v", e.Provider, e.Err)
}

// Unwrap returns the vendor cause.
func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// Is matches the ErrAnalysisFailed sentinel.
func (e *AnalysisError) Is(target error) bool {
	return target == ErrAnalysisFailed
}
