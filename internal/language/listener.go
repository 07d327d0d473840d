package language

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"

	"nltools/internal/docs"
	"nltools/internal/logger"
)

// Listener auto-analyzes documents on creation and modification. It is
// gated by a runtime toggle and by the eligibility rules in CanProcess;
// a failed analysis is logged and dropped so the triggering document
// lifecycle event is never blocked. After a successful chain run it
// publishes EventDocumentHandled with the document reference.
type Listener struct {
	cfg       EligibilityConfig
	chains    *ChainRegistry
	chainName string
	enabled   atomic.Bool
	bus       *docs.Bus
	log       zerolog.Logger
}

// NewListener builds a listener. The chain it runs is cfg's
// DefaultChainName, falling back to DefaultChainName when blank.
func NewListener(cfg EligibilityConfig, chains *ChainRegistry) *Listener {
	chainName := cfg.DefaultChainName
	if chainName == "" {
		chainName = DefaultChainName
	}
	l := &Listener{
		cfg:       cfg,
		chains:    chains,
		chainName: chainName,
		log:       logger.WithComponent("listener"),
	}
	l.enabled.Store(cfg.ListenerEnabled)
	return l
}

// Enabled reports whether the listener currently reacts to events.
func (l *Listener) Enabled() bool {
	return l.enabled.Load()
}

// SetEnabled toggles the listener at runtime. The override is in-memory
// only: last writer wins, and already running handlers are unaffected.
func (l *Listener) SetEnabled(value bool) {
	l.enabled.Store(value)
}

// Attach subscribes the listener to document lifecycle events on the bus.
// The same bus receives the handled notification.
func (l *Listener) Attach(bus *docs.Bus) {
	l.bus = bus
	bus.Subscribe(docs.EventDocumentCreated, l.handle)
	bus.Subscribe(docs.EventDocumentModified, l.handle)
}

func (l *Listener) handle(ctx context.Context, ev docs.Event) {
	if !l.enabled.Load() {
		return
	}
	doc := ev.Document
	if doc == nil {
		return
	}
	if !CanProcess(doc, l.cfg, doc.Marker()) {
		return
	}

	chain, ok := l.chains.Get(l.chainName)
	if !ok {
		l.log.Warn().
			Str("chain", l.chainName).
			Msg("Processing chain not registered, skipping document")
		return
	}

	if err := chain(ctx, doc); err != nil {
		// Auto-analysis must never block the document lifecycle.
		l.log.Warn().
			Err(err).
			Str("chain", l.chainName).
			Str("doc_id", doc.ID).
			Msg("Document processing chain failed")
		return
	}

	l.log.Info().
		Str("doc_id", doc.ID).
		Str("chain", l.chainName).
		Msg("Document analyzed")

	if l.bus != nil {
		l.bus.Publish(ctx, docs.Event{Name: docs.EventDocumentHandled, Document: doc})
	}
}
