package language

import "context"

// AnalysisRequest is the normalized request handed to a provider.
type AnalysisRequest struct {
	// Text to analyze. May be empty.
	Text string

	// Features to request from the vendor. Must not be empty.
	Features []Feature

	// Encoding used to compute token byte offsets. EncodingNone lets the
	// vendor pick its default, in which case offsets are unreliable.
	Encoding Encoding
}

// HasFeature reports whether the request asks for the given feature.
func (r AnalysisRequest) HasFeature(f Feature) bool {
	return hasFeature(r.Features, f)
}

// Provider encapsulates calls to one external natural language vendor.
//
// Provider instances are shared singletons owned by the Registry for the
// process lifetime and must be safe for concurrent use.
type Provider interface {
	// Process sends the request to the vendor and adapts the vendor
	// response into the normalized model. Only the fields implied by the
	// requested features are populated. Any vendor failure is returned as
	// an error; no partial response is ever produced.
	Process(ctx context.Context, req AnalysisRequest) (*AnalysisResponse, error)

	// SupportedFeatures returns the static capability set of this vendor
	// integration.
	SupportedFeatures() []Feature

	// NativeClient returns the underlying vendor client handle, lazily
	// constructing it on first use. Construction is race-free: concurrent
	// first callers observe exactly one construction and the same handle.
	NativeClient(ctx context.Context) (any, error)
}

// Factory builds a Provider from its configuration parameter map. The
// hosting application registers factories explicitly at startup and maps
// configured provider entries through them.
type Factory func(params map[string]string) (Provider, error)
