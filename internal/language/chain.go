package language

import (
	"context"
	"sync"

	"nltools/internal/docs"
)

// DefaultChainName is the processing chain the listener runs when
// configuration does not name another one.
const DefaultChainName = "default-document-processing"

// Chain processes one document end to end, typically analyze-and-persist.
// Chains are looked up by name so deployments can swap the listener's
// processing behavior through configuration alone.
type Chain func(ctx context.Context, doc *docs.Document) error

// ChainRegistry maps chain names to chains. Populated at startup,
// read-mostly afterward.
type ChainRegistry struct {
	mu     sync.RWMutex
	chains map[string]Chain
}

// NewChainRegistry creates an empty chain registry.
func NewChainRegistry() *ChainRegistry {
	return &ChainRegistry{chains: make(map[string]Chain)}
}

// Register adds a chain under the given name.
func (r *ChainRegistry) Register(name string, c Chain) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chains[name] = c
}

// Get returns the chain registered under name.
func (r *ChainRegistry) Get(name string) (Chain, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.chains[name]
	return c, ok
}

// DefaultProcessingChain analyzes a document's primary blob with the
// default provider, requesting every feature that provider supports,
// then stores the marker (response JSON plus the blob's content digest)
// back on the document. The marker write publishes no lifecycle event,
// and the digest guard in CanProcess keeps an eventual re-delivery from
// re-analyzing unchanged content.
func DefaultProcessingChain(svc *Service, store *docs.Store) Chain {
	return func(ctx context.Context, doc *docs.Document) error {
		provider, _, err := svc.registry.Resolve("")
		if err != nil {
			return err
		}

		resp, err := svc.AnalyzeDocument(ctx, "", doc, "", provider.SupportedFeatures())
		if err != nil {
			return err
		}

		resultJSON, err := resp.JSON()
		if err != nil {
			return err
		}

		blob := doc.BlobAt(docs.PrimaryBlobField)
		doc.SetMarker(&docs.Marker{
			ResultJSON:   resultJSON,
			SourceDigest: blob.Digest,
		})
		return store.SaveMarker(ctx, doc)
	}
}
