package language

import (
	"fmt"
	"strings"
)

// Feature is a category of analysis a caller may request from a provider.
type Feature string

const (
	// FeatureSentiment requests the overall emotional leaning of the text.
	FeatureSentiment Feature = "SENTIMENT"

	// FeatureEntities requests named entities (people, organizations,
	// locations, ...) found in the text.
	FeatureEntities Feature = "ENTITIES"

	// FeatureSyntax requests syntactic tokens with part-of-speech and
	// morphology information.
	FeatureSyntax Feature = "SYNTAX"
)

// ParseFeature converts a caller-supplied feature name to a Feature.
// DOCUMENT_SENTIMENT is accepted as a historical alias of SENTIMENT.
func ParseFeature(s string) (Feature, error) {
	switch strings.TrimSpace(s) {
	case "SENTIMENT", "DOCUMENT_SENTIMENT":
		return FeatureSentiment, nil
	case "ENTITIES":
		return FeatureEntities, nil
	case "SYNTAX":
		return FeatureSyntax, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFeature, s)
	}
}

// ParseFeatures converts a list of feature names, collapsing duplicates
// while preserving first-seen order.
func ParseFeatures(names []string) ([]Feature, error) {
	var features []Feature
	seen := make(map[Feature]bool, len(names))
	for _, name := range names {
		f, err := ParseFeature(name)
		if err != nil {
			return nil, err
		}
		if seen[f] {
			continue
		}
		seen[f] = true
		features = append(features, f)
	}
	return features, nil
}

func hasFeature(features []Feature, f Feature) bool {
	for _, have := range features {
		if have == f {
			return true
		}
	}
	return false
}
