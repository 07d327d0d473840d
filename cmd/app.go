package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"nltools/internal/config"
	"nltools/internal/extract"
	"nltools/internal/language"
	"nltools/internal/language/google"
)

// providerFactories maps provider kinds from configuration to their
// constructors. New vendor integrations are added here.
var providerFactories = map[string]language.Factory{
	"google": google.New,
}

// newRegistry builds the provider registry from configuration via the
// factory map.
func newRegistry(cfg *config.Config) (*language.Registry, error) {
	registry := language.NewRegistry(cfg.DefaultProvider)
	for _, pc := range cfg.Providers {
		factory, ok := providerFactories[pc.Kind]
		if !ok {
			return nil, fmt.Errorf("unknown provider kind %q for provider %q", pc.Kind, pc.Name)
		}
		provider, err := factory(pc.Params)
		if err != nil {
			return nil, fmt.Errorf("create provider %q: %w", pc.Name, err)
		}
		registry.Register(pc.Name, provider)
	}
	return registry, nil
}

// newExtractor builds the blob extractor. OCR for image blobs is best
// effort: when the Vision client cannot be created the remaining formats
// still work.
func newExtractor(ctx context.Context, log zerolog.Logger) *extract.BlobExtractor {
	ocr, err := extract.NewVisionExtractor(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("Vision OCR unavailable, image blobs will not be extracted")
		return extract.NewBlobExtractor(nil)
	}
	return extract.NewBlobExtractor(ocr)
}

// newAnalysisService wires configuration, registry and extractor into
// the analysis service.
func newAnalysisService(ctx context.Context, log zerolog.Logger) (*language.Service, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load configuration: %w", err)
	}
	registry, err := newRegistry(cfg)
	if err != nil {
		return nil, nil, err
	}
	return language.NewService(registry, newExtractor(ctx, log)), cfg, nil
}

// eligibilityConfig maps the loaded configuration onto the gate's view
// of it.
func eligibilityConfig(cfg *config.Config) language.EligibilityConfig {
	return language.EligibilityConfig{
		DefaultProviderName: cfg.DefaultProvider,
		DefaultChainName:    cfg.DefaultChain,
		ListenerEnabled:     cfg.ListenerEnabled,
		ExcludedFacets:      cfg.ExcludedFacets,
		ExcludedDocTypes:    cfg.ExcludedDocTypes,
	}
}
