package testutil

import (
	"context"
	"sync"

	"github.com/lustraclean/vitrine/internal/event"
)

// Compile-time interface check.
var _ event.Publisher = (*MockBus)(nil)

// MockBus is a thread-safe in-memory event publisher that records all
// published events for later inspection.
type MockBus struct {
	mu     sync.Mutex
	events []event.Event
}

// NewMockBus returns a new MockBus.
func NewMockBus() *MockBus {
	return &MockBus{}
}

// Publish records an event synchronously.
func (b *MockBus) Publish(_ context.Context, e event.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
	return nil
}

// PublishAsync records an event (same as Publish in tests).
func (b *MockBus) PublishAsync(_ context.Context, e event.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

// Events returns a copy of all recorded events.
func (b *MockBus) Events() []event.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]event.Event, len(b.events))
	copy(out, b.events)
	return out
}

// Topics returns the topics of all recorded events, in publish order.
func (b *MockBus) Topics() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	topics := make([]string, len(b.events))
	for i, e := range b.events {
		topics[i] = e.Topic
	}
	return topics
}

// Reset clears all recorded events.
func (b *MockBus) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = nil
}
