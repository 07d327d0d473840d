package language

import (
	"strings"
	"sync"
)

// DefaultProviderName is used when configuration does not name a default.
const DefaultProviderName = "google"

// Registry maps provider names to shared Provider instances. Names are
// case-sensitive. The registry is populated once at configuration time
// and read-mostly afterward; it is safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	providers   map[string]Provider
	defaultName string
}

// NewRegistry creates an empty registry. A blank defaultName falls back
// to DefaultProviderName.
func NewRegistry(defaultName string) *Registry {
	if strings.TrimSpace(defaultName) == "" {
		defaultName = DefaultProviderName
	}
	return &Registry{
		providers:   make(map[string]Provider),
		defaultName: defaultName,
	}
}

// Register adds a provider under the given name, replacing any previous
// registration with the same name.
func (r *Registry) Register(name string, p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = p
}

// Get returns the provider registered under name, or an
// UnknownProviderError naming it.
func (r *Registry) Get(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[name]
	if !ok {
		return nil, &UnknownProviderError{Name: name}
	}
	return p, nil
}

// Resolve returns the provider for name, falling back to the default
// provider when name is blank. The returned string is the effective
// provider name. An unregistered default fails the same way as any other
// unknown name; the registry never silently picks another provider.
func (r *Registry) Resolve(name string) (Provider, string, error) {
	if strings.TrimSpace(name) == "" {
		name = r.DefaultName()
	}
	p, err := r.Get(name)
	if err != nil {
		return nil, name, err
	}
	return p, name, nil
}

// All returns a copy of the name-to-provider mapping.
func (r *Registry) All() map[string]Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]Provider, len(r.providers))
	for name, p := range r.providers {
		out[name] = p
	}
	return out
}

// DefaultName returns the configured default provider name.
func (r *Registry) DefaultName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultName
}
