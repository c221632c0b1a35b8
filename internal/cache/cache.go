// Package cache stores analysis results keyed by the content they were computed from.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Cache stores JSON-encodable values under string keys.
type Cache interface {
	// Get decodes the value stored under key into dst. It reports false on a miss.
	Get(ctx context.Context, key string, dst any) (bool, error)
	// Set stores v under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
}

// CodecError wraps a failure to encode or decode a cached value
type CodecError struct {
	Key   string
	Cause error
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("cache codec error for %s: %v", e.Key, e.Cause)
}

func (e *CodecError) Unwrap() error {
	return e.Cause
}

// Noop never stores anything.
type Noop struct{}

// Get always misses.
func (Noop) Get(context.Context, string, any) (bool, error) { return false, nil }

// Set discards v.
func (Noop) Set(context.Context, string, any, time.Duration) error { return nil }

type memoryEntry struct {
	data    []byte
	expires time.Time
}

// Memory is an in-process cache used when no Redis URL is configured and in tests.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemory creates an empty in-process cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry), now: time.Now}
}

// Get decodes the value under key into dst. Expired entries are dropped.
func (m *Memory) Get(_ context.Context, key string, dst any) (bool, error) {
	m.mu.Lock()
	entry, ok := m.entries[key]
	if ok && !entry.expires.IsZero() && !m.now().Before(entry.expires) {
		delete(m.entries, key)
		ok = false
	}
	m.mu.Unlock()

	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(entry.data, dst); err != nil {
		return false, &CodecError{Key: key, Cause: err}
	}
	return true, nil
}

// Set stores v under key.
func (m *Memory) Set(_ context.Context, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &CodecError{Key: key, Cause: err}
	}

	entry := memoryEntry{data: data}
	if ttl > 0 {
		entry.expires = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired or not.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
