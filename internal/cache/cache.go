// Package cache provides the key-value store used to persist catalog
// load results between sessions. Values are opaque strings; TTL
// interpretation belongs to the caller.
package cache

import (
	"context"
	"errors"
	"sync"
)

// ErrNotFound is returned by Get when no value exists for a key.
var ErrNotFound = errors.New("cache: key not found")

// Store is a minimal key-value store. Implementations must be safe for
// concurrent use.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set creates or replaces the value for key.
	Set(ctx context.Context, key, value string) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Compile-time interface guard.
var _ Store = (*Memory)(nil)

// Memory is an in-process Store, used in tests and cache-less deployments.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]string)}
}

func (m *Memory) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.entries[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = value
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}
