package language

import "nltools/internal/docs"

// EligibilityConfig is the configuration consulted when deciding whether
// a document should be auto-analyzed.
type EligibilityConfig struct {
	// DefaultProviderName selects the provider used when callers pass a
	// blank name.
	DefaultProviderName string

	// DefaultChainName is the processing chain the listener runs.
	DefaultChainName string

	// ListenerEnabled is the startup value of the listener toggle.
	ListenerEnabled bool

	// ExcludedFacets lists facets that keep a document from being
	// auto-analyzed.
	ExcludedFacets []string

	// ExcludedDocTypes lists document types that are never auto-analyzed.
	ExcludedDocTypes []string
}

// CanProcess decides whether the document should be (re-)analyzed now.
// Pure function of the document snapshot, the configuration, and the
// prior-processing marker; the first matching rule decides:
//
//  1. An excluded facet blocks processing unless the document already
//     carries a marker. A marked document stays eligible even after an
//     excluding facet was added, so a caller can reconcile the stale
//     marker.
//  2. An excluded document type blocks processing, marker or not.
//  3. No content blob and no marker: nothing to analyze, nothing to
//     reconcile.
//  4. A blob whose digest equals the marker's source digest was already
//     analyzed and has not changed since.
//  5. Otherwise the document is eligible.
func CanProcess(doc *docs.Document, cfg EligibilityConfig, marker *docs.Marker) bool {
	if doc == nil {
		return false
	}

	hasMarker := marker != nil && (marker.SourceDigest != "" || marker.ResultJSON != "")

	for _, facet := range cfg.ExcludedFacets {
		if doc.HasFacet(facet) && !hasMarker {
			return false
		}
	}

	for _, docType := range cfg.ExcludedDocTypes {
		if doc.Type == docType {
			return false
		}
	}

	blob := doc.BlobAt(docs.PrimaryBlobField)
	hasBlob := blob != nil && len(blob.Data) > 0

	if !hasBlob && !hasMarker {
		return false
	}
	if hasBlob && hasMarker && blob.Digest == marker.SourceDigest {
		return false
	}

	return true
}
