// Package events provides a small in-process observer registry. Subscribers
// register per event kind and are notified synchronously in registration
// order; a failing subscriber never prevents the remaining ones from running.
package events

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Kind identifies an event type on the bus.
type Kind string

const (
	// SearchCompleted fires after search, scoring and ranking finished.
	SearchCompleted Kind = "search.completed"
	// TrackSelected fires once the resolver accepted a candidate.
	TrackSelected Kind = "track.selected"
	// TrackFetched fires after the fetch provider stored the audio.
	TrackFetched Kind = "track.fetched"
	// FetchFailed fires when the fetch provider returned an error.
	FetchFailed Kind = "fetch.failed"
	// ResolveAbandoned fires when resolution ends without a selection.
	ResolveAbandoned Kind = "resolve.abandoned"
)

// SearchEvent is the payload for SearchCompleted.
type SearchEvent struct {
	Query   string
	Results int
	Ranked  int
	Elapsed time.Duration
}

// SelectEvent is the payload for TrackSelected.
type SelectEvent struct {
	TrackID    string
	Title      string
	Confidence int
	Auto       bool
}

// FetchEvent is the payload for TrackFetched.
type FetchEvent struct {
	TrackID     string
	Title       string
	LibrarySize int
}

// FetchFailEvent is the payload for FetchFailed.
type FetchFailEvent struct {
	TrackID string
	Title   string
	Err     error
}

// Abandon reasons carried by AbandonEvent.
const (
	ReasonNoResults = "no_results"
	ReasonCancelled = "cancelled"
)

// AbandonEvent is the payload for ResolveAbandoned.
type AbandonEvent struct {
	Query  string
	Reason string // ReasonNoResults or ReasonCancelled
}

// Handler receives event payloads for one kind.
type Handler func(payload any)

// Bus dispatches events to ordered subscriber lists.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Kind][]Handler
	logger   *zap.Logger
}

// NewBus creates an empty bus.
func NewBus(logger *zap.Logger) *Bus {
	return &Bus{
		handlers: make(map[Kind][]Handler),
		logger:   logger,
	}
}

// Subscribe appends handler to the ordered subscriber list for kind.
func (b *Bus) Subscribe(kind Kind, handler Handler) {
	if handler == nil {
		return
	}
	b.mu.Lock()
	b.handlers[kind] = append(b.handlers[kind], handler)
	b.mu.Unlock()
}

// Publish invokes every subscriber for kind in registration order. A
// panicking subscriber is recovered and logged so the others still run.
func (b *Bus) Publish(kind Kind, payload any) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[kind]))
	copy(handlers, b.handlers[kind])
	b.mu.RUnlock()

	for i, handler := range handlers {
		b.invoke(kind, i, handler, payload)
	}
}

func (b *Bus) invoke(kind Kind, index int, handler Handler, payload any) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("Event handler panicked",
				zap.String("kind", string(kind)),
				zap.Int("handler", index),
				zap.Any("panic", r))
		}
	}()
	handler(payload)
}
