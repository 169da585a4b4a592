// Package memcache implements the shared in-memory result cache.
package memcache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.seclens.dev/seclens/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	// DefaultTTL is how long an entry stays servable without an explicit
	// refresh. Entries are long-lived; correctness depends on disciplined
	// invalidation by the managers, not on expiry.
	DefaultTTL = 24 * time.Hour

	// DefaultMaxItems caps the number of live entries. When the cap is
	// reached the oldest entry is evicted.
	DefaultMaxItems = 100
)

type entry struct {
	value    any
	data     []byte
	digest   uint64
	storedAt time.Time
}

// Store implements ports.KeyValueCache. Values are serialized once at Set
// time so size and digest queries never re-marshal; expiry is checked
// lazily on Get.
type Store struct {
	ttl      time.Duration
	maxItems int

	mu      sync.RWMutex
	entries map[domain.Key]entry
}

// Option configures a Store.
type Option func(*Store)

// WithTTL overrides the entry time-to-live.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// WithMaxItems overrides the entry cap.
func WithMaxItems(n int) Option {
	return func(s *Store) { s.maxItems = n }
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		ttl:      DefaultTTL,
		maxItems: DefaultMaxItems,
		entries:  make(map[domain.Key]entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the value stored under key. Expired entries are dropped and
// reported as a miss.
func (s *Store) Get(_ context.Context, key domain.Key) (any, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if time.Since(e.storedAt) > s.ttl {
		s.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have
		// replaced the entry in the meantime.
		if cur, still := s.entries[key]; still && time.Since(cur.storedAt) > s.ttl {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false, nil
	}
	return e.value, true, nil
}

// Set stores value under key, overwriting unconditionally.
func (s *Store) Set(_ context.Context, key domain.Key, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to serialize cache entry"), "key", key.String())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; !exists && len(s.entries) >= s.maxItems {
		s.evictOldestLocked()
	}

	s.entries[key] = entry{
		value:    value,
		data:     data,
		digest:   xxhash.Sum64(data),
		storedAt: time.Now(),
	}
	return nil
}

// Delete removes one key.
func (s *Store) Delete(_ context.Context, key domain.Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// Reset clears every key, both domains included.
func (s *Store) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[domain.Key]entry)
	return nil
}

// SizeOf returns the serialized byte size of the entry, 0 if absent.
func (s *Store) SizeOf(_ context.Context, key domain.Key) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok {
		return 0, nil
	}
	return int64(len(e.data)), nil
}

// Digest returns the xxhash of the serialized entry, 0 if absent.
func (s *Store) Digest(_ context.Context, key domain.Key) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok {
		return 0, nil
	}
	return e.digest, nil
}

// Len returns the number of live entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// evictOldestLocked must be called with mu held.
func (s *Store) evictOldestLocked() {
	var (
		oldestKey domain.Key
		oldestAt  time.Time
		first     = true
	)
	for k, e := range s.entries {
		if first || e.storedAt.Before(oldestAt) {
			oldestKey = k
			oldestAt = e.storedAt
			first = false
		}
	}
	if !first {
		delete(s.entries, oldestKey)
	}
}
