// Package event provides the in-process publish/subscribe bus through
// which the catalog notifies presentation adapters of state changes.
package event

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Topics published by the catalog.
const (
	TopicCatalogRefreshed = "catalog.refreshed"
	TopicCatalogNavigated = "catalog.navigated"
	TopicCatalogWarning   = "catalog.warning"
)

// Event is a notification delivered to subscribers.
type Event struct {
	ID        string
	Topic     string
	Source    string
	Timestamp time.Time
	Payload   any
}

// Handler processes a published event. Handlers must not block for long;
// use PublishAsync for slow consumers.
type Handler func(ctx context.Context, e Event)

// Publisher is the bus surface components publish through. Satisfied by
// *Bus; tests substitute a recording implementation.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	PublishAsync(ctx context.Context, e Event)
}

// Compile-time interface guard.
var _ Publisher = (*Bus)(nil)

// Bus is a topic-based publish/subscribe bus. Safe for concurrent use.
type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[string]map[int]Handler // topic -> subscriber id -> handler
	all      map[int]Handler            // wildcard subscribers
	logger   *zap.Logger
}

// NewBus creates an empty Bus.
func NewBus(logger *zap.Logger) *Bus {
	return &Bus{
		handlers: make(map[string]map[int]Handler),
		all:      make(map[int]Handler),
		logger:   logger,
	}
}

// Subscribe registers a handler for a topic and returns an unsubscribe func.
func (b *Bus) Subscribe(topic string, h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	if b.handlers[topic] == nil {
		b.handlers[topic] = make(map[int]Handler)
	}
	b.handlers[topic][id] = h

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers[topic], id)
	}
}

// SubscribeAll registers a handler for every topic and returns an
// unsubscribe func.
func (b *Bus) SubscribeAll(h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.all[id] = h

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.all, id)
	}
}

// Publish delivers the event synchronously to all matching subscribers.
// An event without an ID or timestamp gets them filled in.
func (b *Bus) Publish(ctx context.Context, e Event) error {
	e = b.stamp(e)
	for _, h := range b.snapshot(e.Topic) {
		b.invoke(ctx, h, e)
	}
	return nil
}

// PublishAsync delivers the event to all matching subscribers, each in
// its own goroutine.
func (b *Bus) PublishAsync(ctx context.Context, e Event) {
	e = b.stamp(e)
	for _, h := range b.snapshot(e.Topic) {
		go b.invoke(ctx, h, e)
	}
}

// stamp fills in the event ID and timestamp if absent.
func (b *Bus) stamp(e Event) Event {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	return e
}

// snapshot copies the matching handlers under the read lock so handlers
// can subscribe/unsubscribe from within a callback.
func (b *Bus) snapshot(topic string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()

	hs := make([]Handler, 0, len(b.handlers[topic])+len(b.all))
	for _, h := range b.handlers[topic] {
		hs = append(hs, h)
	}
	for _, h := range b.all {
		hs = append(hs, h)
	}
	return hs
}

// invoke runs a handler, recovering from panics so one bad subscriber
// cannot take down the publisher.
func (b *Bus) invoke(ctx context.Context, h Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				zap.String("topic", e.Topic),
				zap.Any("panic", r),
			)
		}
	}()
	h(ctx, e)
}
