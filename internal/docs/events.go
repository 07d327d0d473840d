package docs

import (
	"context"
	"sync"
)

// Document lifecycle event names published by the store, plus the
// notification fired after the analysis listener handled a document.
const (
	EventDocumentCreated  = "documentCreated"
	EventDocumentModified = "documentModified"
	EventDocumentHandled  = "naturalLanguageDocumentHandled"
)

// Event carries a document reference to subscribed handlers.
type Event struct {
	Name     string
	Document *Document
}

// Handler receives published events. Handlers run synchronously on the
// publisher's goroutine, so slow work (vendor calls) should already be
// off any latency-sensitive path before it reaches the bus.
type Handler func(ctx context.Context, ev Event)

// Bus is a minimal in-process publish/subscribe dispatcher keyed by
// event name. Safe for concurrent use.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]Handler)}
}

// Subscribe registers a handler for the named event.
func (b *Bus) Subscribe(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[name] = append(b.handlers[name], h)
}

// Publish delivers the event to every handler subscribed to its name.
func (b *Bus) Publish(ctx context.Context, ev Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[ev.Name]))
	copy(handlers, b.handlers[ev.Name])
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ctx, ev)
	}
}
