package eventbus

import (
	"log"
	"runtime/debug"
	"sync"

	"glint/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventAppIndexUpdated    = domain.EventAppIndexUpdated
	EventIndexScanRequested = domain.EventIndexScanRequested
	EventIndexScanStarted   = domain.EventIndexScanStarted
	EventIndexScanCompleted = domain.EventIndexScanCompleted
	EventClipboardChanged   = domain.EventClipboardChanged
	EventCommitPerformed    = domain.EventCommitPerformed
	EventError              = domain.EventError
	EventConfigLoaded       = domain.EventConfigLoaded
)

// Re-export domain event types
type AppIndexUpdatedEvent = domain.AppIndexUpdatedEvent
type IndexScanRequestedEvent = domain.IndexScanRequestedEvent
type IndexScanStartedEvent = domain.IndexScanStartedEvent
type IndexScanCompletedEvent = domain.IndexScanCompletedEvent
type ClipboardChangedEvent = domain.ClipboardChangedEvent
type CommitPerformedEvent = domain.CommitPerformedEvent
type ErrorEvent = domain.ErrorEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

// subscription pairs a handler with an id so it can be removed again.
type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 1000),
		quit:      make(chan struct{}),
	}

	// Start the event dispatcher
	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	// Skip logging for high-frequency events
	switch event.Type() {
	case EventClipboardChanged:
		// Poll-driven, too frequent to log
	default:
		log.Printf("EventBus: Publishing event %s", event.Type())
	}

	select {
	case b.eventChan <- event:
		// Event sent successfully
	default:
		// Channel full, log and drop
		log.Printf("Event bus channel full, dropping event: %v", event.Type())
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	// Return unsubscribe function
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}
}

// dispatch handles event distribution to subscribers. Handlers run
// sequentially on this goroutine so same-type events arrive in publish
// order; clipboard ingestion depends on that to keep history order.
// Handlers must therefore not block.
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			// Get handlers for this event type
			b.mu.RLock()
			subs := b.handlers[event.Type()]
			// Make a copy to avoid holding lock during handler execution
			subsCopy := make([]subscription, len(subs))
			copy(subsCopy, subs)
			b.mu.RUnlock()

			for _, sub := range subsCopy {
				b.invoke(sub.handler, event)
			}

		case <-b.quit:
			// Drain remaining events
			for {
				select {
				case <-b.eventChan:
					// Discard event
				default:
					return
				}
			}
		}
	}
}

// invoke calls one handler, containing any panic so a bad subscriber
// cannot kill the dispatcher.
func (b *bus) invoke(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Event handler panic for %s: %v\nStack: %s", event.Type(), r, debug.Stack())
		}
	}()
	h(event)
}
